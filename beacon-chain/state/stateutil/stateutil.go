// Package stateutil computes the roots of beacon state fields directly from
// their plain values, without building a backing tree.
package stateutil

import (
	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	fieldparams "github.com/YoutacRandS-VA/teku/config/fieldparams"
	"github.com/pkg/errors"
	ssz "github.com/prysmaticlabs/fastssz"
)

// Uint64ListRootWithRegistryLimit returns the root of a uint64 list bounded
// by the validator registry limit, such as balances or inactivity scores.
func Uint64ListRootWithRegistryLimit(vals []uint64) ([32]byte, error) {
	hh := ssz.DefaultHasherPool.Get()
	defer ssz.DefaultHasherPool.Put(hh)

	indx := hh.Index()
	n := uint64(len(vals))
	if n > fieldparams.ValidatorRegistryLimit {
		return [32]byte{}, ssz.ErrListTooBig
	}
	for _, v := range vals {
		hh.AppendUint64(v)
	}
	hh.FillUpTo32()
	hh.MerkleizeWithMixin(indx, n, ssz.CalculateLimit(fieldparams.ValidatorRegistryLimit, n, 8))
	return hh.HashRoot()
}

// ValidatorRoot returns the root of a registry entry.
func ValidatorRoot(v *state.Validator) ([32]byte, error) {
	if v == nil {
		return [32]byte{}, errors.New("nil validator")
	}
	hh := ssz.DefaultHasherPool.Get()
	defer ssz.DefaultHasherPool.Put(hh)

	putValidator(hh, v)
	return hh.HashRoot()
}

func putValidator(hh *ssz.Hasher, v *state.Validator) {
	indx := hh.Index()
	hh.PutBytes(v.PublicKey[:])
	hh.PutBytes(v.WithdrawalCredentials[:])
	hh.PutUint64(v.EffectiveBalance)
	hh.PutBool(v.Slashed)
	hh.PutUint64(uint64(v.ActivationEligibilityEpoch))
	hh.PutUint64(uint64(v.ActivationEpoch))
	hh.PutUint64(uint64(v.ExitEpoch))
	hh.PutUint64(uint64(v.WithdrawableEpoch))
	hh.Merkleize(indx)
}

// ValidatorRegistryRoot returns the root of the validator registry list.
func ValidatorRegistryRoot(vals []*state.Validator) ([32]byte, error) {
	hh := ssz.DefaultHasherPool.Get()
	defer ssz.DefaultHasherPool.Put(hh)

	indx := hh.Index()
	n := uint64(len(vals))
	if n > fieldparams.ValidatorRegistryLimit {
		return [32]byte{}, ssz.ErrListTooBig
	}
	for i, v := range vals {
		if v == nil {
			return [32]byte{}, errors.Errorf("nil validator at index %d", i)
		}
		putValidator(hh, v)
	}
	hh.MerkleizeWithMixin(indx, n, fieldparams.ValidatorRegistryLimit)
	return hh.HashRoot()
}

// HistoricalSummariesRoot returns the root of the historical summaries list.
func HistoricalSummariesRoot(summaries []*state.HistoricalSummary) ([32]byte, error) {
	hh := ssz.DefaultHasherPool.Get()
	defer ssz.DefaultHasherPool.Put(hh)

	indx := hh.Index()
	n := uint64(len(summaries))
	if n > fieldparams.HistoricalRootsLength {
		return [32]byte{}, ssz.ErrListTooBig
	}
	for _, s := range summaries {
		if s == nil {
			return [32]byte{}, errors.New("nil historical summary")
		}
		sub := hh.Index()
		hh.PutBytes(s.BlockSummaryRoot[:])
		hh.PutBytes(s.StateSummaryRoot[:])
		hh.Merkleize(sub)
	}
	hh.MerkleizeWithMixin(indx, n, fieldparams.HistoricalRootsLength)
	return hh.HashRoot()
}

// RandaoMixesRoot returns the root of the full randao mixes vector.
func RandaoMixesRoot(mixes [][32]byte) ([32]byte, error) {
	if len(mixes) != fieldparams.RandaoMixesLength {
		return [32]byte{}, errors.Wrapf(ssz.ErrVectorLength, "got %d randao mixes, want %d", len(mixes), fieldparams.RandaoMixesLength)
	}
	hh := ssz.DefaultHasherPool.Get()
	defer ssz.DefaultHasherPool.Put(hh)

	indx := hh.Index()
	for i := range mixes {
		hh.Append(mixes[i][:])
	}
	hh.Merkleize(indx)
	return hh.HashRoot()
}

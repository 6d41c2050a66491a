// Package interop builds genesis states for local and test networks from a
// deterministic validator set and an execution layer genesis block.
package interop

import (
	"context"
	"time"

	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/YoutacRandS-VA/teku/consensus-types/blocks"
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/crypto/hash"
	"github.com/YoutacRandS-VA/teku/genesis"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var errNilExecutionBlock = errors.New("execution genesis block is required from bellatrix on")

// DeterministicValidators returns n active validators with max effective
// balance. Keys are derived from the validator index and are not usable for
// signing. The first nExecCreds validators get execution withdrawal
// credentials pointing at an address derived the same way.
func DeterministicValidators(n, nExecCreds uint64) ([]*state.Validator, []uint64) {
	cfg := params.BeaconConfig()
	vals := make([]*state.Validator, n)
	bals := make([]uint64, n)
	for i := uint64(0); i < n; i++ {
		seed := hash.Hash([]byte{byte(i), byte(i >> 8), byte(i >> 16), byte(i >> 24)})
		v := &state.Validator{
			EffectiveBalance:  cfg.MaxEffectiveBalance,
			ExitEpoch:         cfg.FarFutureEpoch,
			WithdrawableEpoch: cfg.FarFutureEpoch,
		}
		copy(v.PublicKey[:], seed[:])
		copy(v.PublicKey[32:], seed[:16])
		if i < nExecCreds {
			v.WithdrawalCredentials[0] = 0x01
			copy(v.WithdrawalCredentials[12:], seed[:common.AddressLength])
		} else {
			v.WithdrawalCredentials = hash.Hash(v.PublicKey[:])
			v.WithdrawalCredentials[0] = 0x00 // BLS withdrawal prefix.
		}
		vals[i] = v
		bals[i] = cfg.MaxEffectiveBalance
	}
	return vals, bals
}

// NewPreminedGenesis returns the genesis state of fork v starting at t with
// nvals deterministic validators. From Bellatrix on the latest execution
// payload header is taken from the execution genesis block gb.
func NewPreminedGenesis(ctx context.Context, t time.Time, nvals, nExecCreds uint64, v int, gb *types.Block) (state.BeaconState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	vals, bals := DeterministicValidators(nvals, nExecCreds)
	st, err := genesis.NewGenesisState(v, uint64(t.Unix()), vals, bals) // lint:ignore uintcast -- Genesis times are never negative.
	if err != nil {
		return nil, err
	}
	if v < version.Bellatrix {
		return st, nil
	}
	if gb == nil {
		return nil, errNilExecutionBlock
	}
	p, err := payloadFromBlock(v, gb)
	if err != nil {
		return nil, err
	}
	h, err := blocks.PayloadToHeader(p)
	if err != nil {
		return nil, err
	}
	m, err := state.RequireMutableBellatrix(st.ToMutable())
	if err != nil {
		return nil, err
	}
	if err := m.SetLatestExecutionPayloadHeader(h); err != nil {
		return nil, err
	}
	return m.Commit()
}

func payloadFromBlock(v int, gb *types.Block) (interfaces.ExecutionPayload, error) {
	if gb.BaseFee() == nil {
		return nil, errors.New("baseFeePerGas must be set in the execution genesis block for post-merge networks")
	}
	baseFee, overflow := uint256.FromBig(gb.BaseFee())
	if overflow {
		return nil, errors.New("baseFeePerGas overflows 256 bits")
	}
	f := &blocks.ExecutionPayloadFields{
		ParentHash:    gb.ParentHash(),
		FeeRecipient:  gb.Coinbase(),
		StateRoot:     gb.Root(),
		ReceiptsRoot:  gb.ReceiptHash(),
		LogsBloom:     gb.Bloom().Bytes(),
		PrevRandao:    gb.MixDigest(),
		BlockNumber:   gb.NumberU64(),
		GasLimit:      gb.GasLimit(),
		GasUsed:       gb.GasUsed(),
		Timestamp:     gb.Time(),
		ExtraData:     gb.Extra(),
		BaseFeePerGas: baseFee,
		BlockHash:     gb.Hash(),
	}
	if v >= version.Deneb {
		if u := gb.BlobGasUsed(); u != nil {
			f.BlobGasUsed = *u
		}
		if e := gb.ExcessBlobGas(); e != nil {
			f.ExcessBlobGas = *e
		}
	}
	p, err := blocks.NewExecutionPayload(v, f)
	if err != nil {
		return nil, errors.Wrap(err, "could not build execution genesis payload")
	}
	return p, nil
}

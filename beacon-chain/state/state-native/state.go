package state_native

import (
	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/go-bitfield"
)

var (
	_ = state.PendingAttestationsState(&beaconStatePhase0{})
	_ = state.BeaconStatePhase0(&beaconStateElectra{})
	_ = state.BeaconStateElectra(&beaconStateElectra{})
)

// beaconState is a tree backed beacon state. Fork specific wrappers embed it
// so each accessor is only reachable on states of the fork that declares it
// or a later one.
type beaconState struct {
	*schema.Container
	version int
	self    state.BeaconState
}

type beaconStatePhase0 struct{ *beaconState }
type beaconStateAltair struct{ *beaconState }
type beaconStateBellatrix struct{ *beaconStateAltair }
type beaconStateCapella struct{ *beaconStateBellatrix }
type beaconStateDeneb struct{ *beaconStateCapella }
type beaconStateElectra struct{ *beaconStateDeneb }

func wrapState(c *schema.Container, v int) schema.Value {
	base := &beaconState{Container: c, version: v}
	var out state.BeaconState
	switch {
	case v >= version.Electra:
		out = &beaconStateElectra{&beaconStateDeneb{&beaconStateCapella{&beaconStateBellatrix{&beaconStateAltair{base}}}}}
	case v >= version.Deneb:
		out = &beaconStateDeneb{&beaconStateCapella{&beaconStateBellatrix{&beaconStateAltair{base}}}}
	case v >= version.Capella:
		out = &beaconStateCapella{&beaconStateBellatrix{&beaconStateAltair{base}}}
	case v >= version.Bellatrix:
		out = &beaconStateBellatrix{&beaconStateAltair{base}}
	case v >= version.Altair:
		out = &beaconStateAltair{base}
	default:
		out = &beaconStatePhase0{base}
	}
	base.self = out
	return out
}

func (b *beaconState) Version() int { return b.version }

func (b *beaconState) field(name string) schema.Value {
	i, err := b.ContainerSchema().FieldIndex(name)
	if err != nil {
		// lint:nopanic -- accessors only name fields of their own fork.
		panic(errors.Wrapf(err, "%s state", version.String(b.version)))
	}
	return schema.MustField[schema.Value](b.Container, i)
}

func (b *beaconState) uint64Field(name string) uint64 {
	return uint64(b.field(name).(schema.Uint64))
}

func (b *beaconState) list(name string) *schema.List     { return b.field(name).(*schema.List) }
func (b *beaconState) vector(name string) *schema.Vector { return b.field(name).(*schema.Vector) }

func (b *beaconState) GenesisTime() uint64      { return b.uint64Field(genesisTime) }
func (b *beaconState) Slot() primitives.Slot    { return primitives.Slot(b.uint64Field(slot)) }
func (b *beaconState) Eth1DepositIndex() uint64 { return b.uint64Field(eth1DepositIndex) }

func (b *beaconState) GenesisValidatorsRoot() [32]byte {
	return bytes32Of(b.field(genesisValidatorsRoot))
}

func (b *beaconState) Fork() *params.Fork { return forkFrom(b.field(fork)) }

func (b *beaconState) LatestBlockHeader() *state.BeaconBlockHeader {
	return blockHeaderFrom(b.field(latestBlockHeader))
}

// BlockRootAtIndex returns the block root at idx of the circular block roots vector.
func (b *beaconState) BlockRootAtIndex(idx uint64) ([32]byte, error) {
	v, err := b.vector(blockRoots).Get(idx)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not get block root")
	}
	return bytes32Of(v), nil
}

// StateRootAtIndex returns the state root at idx of the circular state roots vector.
func (b *beaconState) StateRootAtIndex(idx uint64) ([32]byte, error) {
	v, err := b.vector(stateRoots).Get(idx)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not get state root")
	}
	return bytes32Of(v), nil
}

func (b *beaconState) HistoricalRoots() [][32]byte {
	elems := b.list(historicalRoots).Elements()
	out := make([][32]byte, len(elems))
	for i, e := range elems {
		out[i] = bytes32Of(e)
	}
	return out
}

func (b *beaconState) Eth1Data() *state.Eth1Data { return eth1DataFrom(b.field(eth1Data)) }

func (b *beaconState) Eth1DataVotes() []*state.Eth1Data {
	elems := b.list(eth1DataVotes).Elements()
	out := make([]*state.Eth1Data, len(elems))
	for i, e := range elems {
		out[i] = eth1DataFrom(e)
	}
	return out
}

func (b *beaconState) NumValidators() int { return int(b.list(validators).Len()) }

// ValidatorAtIndex returns a copy of the validator at idx.
func (b *beaconState) ValidatorAtIndex(idx primitives.ValidatorIndex) (*state.Validator, error) {
	v, err := b.list(validators).Get(uint64(idx))
	if err != nil {
		return nil, errors.Wrapf(err, "could not get validator %d", idx)
	}
	return validatorFrom(v), nil
}

func (b *beaconState) Balances() []uint64 { return uint64s(b.list(balances)) }

func (b *beaconState) BalanceAtIndex(idx primitives.ValidatorIndex) (uint64, error) {
	v, err := b.list(balances).Get(uint64(idx))
	if err != nil {
		return 0, errors.Wrapf(err, "could not get balance %d", idx)
	}
	return uint64(v.(schema.Uint64)), nil
}

func (b *beaconState) RandaoMixAtIndex(idx uint64) ([32]byte, error) {
	v, err := b.vector(randaoMixes).Get(idx)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "could not get randao mix")
	}
	return bytes32Of(v), nil
}

func (b *beaconState) SlashingAtIndex(idx uint64) (primitives.Gwei, error) {
	v, err := b.vector(slashings).Get(idx)
	if err != nil {
		return 0, errors.Wrap(err, "could not get slashing")
	}
	return primitives.Gwei(v.(schema.Uint64)), nil
}

func (b *beaconState) JustificationBits() bitfield.Bitvector4 {
	return bitfield.Bitvector4(b.field(justificationBits).(*schema.Bitvector).Bytes())
}

func (b *beaconState) PreviousJustifiedCheckpoint() *state.Checkpoint {
	return checkpointFrom(b.field(previousJustifiedCheckpoint))
}

func (b *beaconState) CurrentJustifiedCheckpoint() *state.Checkpoint {
	return checkpointFrom(b.field(currentJustifiedCheckpoint))
}

func (b *beaconState) FinalizedCheckpoint() *state.Checkpoint {
	return checkpointFrom(b.field(finalizedCheckpoint))
}

// ToMutable returns a staging copy of the state.
func (b *beaconState) ToMutable() state.MutableBeaconState {
	return newMutableState(b)
}

func (b *beaconState) ToVersionPhase0() (state.BeaconStatePhase0, bool) {
	s, ok := b.self.(state.BeaconStatePhase0)
	return s, ok
}

func (b *beaconState) ToVersionAltair() (state.BeaconStateAltair, bool) {
	if b.version < version.Altair {
		return nil, false
	}
	s, ok := b.self.(state.BeaconStateAltair)
	return s, ok
}

func (b *beaconState) ToVersionBellatrix() (state.BeaconStateBellatrix, bool) {
	if b.version < version.Bellatrix {
		return nil, false
	}
	s, ok := b.self.(state.BeaconStateBellatrix)
	return s, ok
}

func (b *beaconState) ToVersionCapella() (state.BeaconStateCapella, bool) {
	if b.version < version.Capella {
		return nil, false
	}
	s, ok := b.self.(state.BeaconStateCapella)
	return s, ok
}

func (b *beaconState) ToVersionDeneb() (state.BeaconStateDeneb, bool) {
	if b.version < version.Deneb {
		return nil, false
	}
	s, ok := b.self.(state.BeaconStateDeneb)
	return s, ok
}

func (b *beaconState) ToVersionElectra() (state.BeaconStateElectra, bool) {
	if b.version < version.Electra {
		return nil, false
	}
	s, ok := b.self.(state.BeaconStateElectra)
	return s, ok
}

func (b *beaconStatePhase0) PreviousEpochAttestations() []*state.PendingAttestation {
	return pendingAttestations(b.list(previousEpochAttestations))
}

func (b *beaconStatePhase0) CurrentEpochAttestations() []*state.PendingAttestation {
	return pendingAttestations(b.list(currentEpochAttestations))
}

func pendingAttestations(l *schema.List) []*state.PendingAttestation {
	elems := l.Elements()
	out := make([]*state.PendingAttestation, len(elems))
	for i, e := range elems {
		out[i] = pendingAttestationFrom(e)
	}
	return out
}

func (b *beaconStateAltair) PreviousEpochParticipation() []byte {
	return participation(b.list(previousEpochParticipation))
}

func (b *beaconStateAltair) CurrentEpochParticipation() []byte {
	return participation(b.list(currentEpochParticipation))
}

func participation(l *schema.List) []byte {
	elems := l.Elements()
	out := make([]byte, len(elems))
	for i, e := range elems {
		out[i] = byte(e.(schema.Uint8))
	}
	return out
}

func (b *beaconStateAltair) InactivityScores() []uint64 { return uint64s(b.list(inactivityScores)) }

func (b *beaconStateAltair) CurrentSyncCommittee() *state.SyncCommittee {
	return syncCommitteeFrom(b.field(currentSyncCommittee))
}

func (b *beaconStateAltair) NextSyncCommittee() *state.SyncCommittee {
	return syncCommitteeFrom(b.field(nextSyncCommittee))
}

func (b *beaconStateBellatrix) LatestExecutionPayloadHeader() interfaces.ExecutionPayloadHeader {
	return b.field(latestExecutionPayloadHeader).(interfaces.ExecutionPayloadHeader)
}

func (b *beaconStateCapella) NextWithdrawalIndex() uint64 { return b.uint64Field(nextWithdrawalIndex) }

func (b *beaconStateCapella) NextWithdrawalValidatorIndex() primitives.ValidatorIndex {
	return primitives.ValidatorIndex(b.uint64Field(nextWithdrawalValidatorIdx))
}

func (b *beaconStateCapella) HistoricalSummaries() []*state.HistoricalSummary {
	elems := b.list(historicalSummaries).Elements()
	out := make([]*state.HistoricalSummary, len(elems))
	for i, e := range elems {
		out[i] = historicalSummaryFrom(e)
	}
	return out
}

func (b *beaconStateElectra) DepositReceiptsStartIndex() uint64 {
	return b.uint64Field(depositReceiptsStartIndex)
}

func uint64s(l *schema.List) []uint64 {
	elems := l.Elements()
	out := make([]uint64, len(elems))
	for i, e := range elems {
		out[i] = uint64(e.(schema.Uint64))
	}
	return out
}

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
	_ = state.MutablePendingAttestationsState(&mutableBeaconStatePhase0{})
	_ = state.MutableBeaconStatePhase0(&mutableBeaconStateElectra{})
	_ = state.MutableBeaconStateElectra(&mutableBeaconStateElectra{})
)

// mutableBeaconState stages writes against a beacon state. List and vector
// fields touched through element setters are staged as mutable sequences and
// folded back into the container on Commit.
type mutableBeaconState struct {
	mc        *schema.MutableContainer
	version   int
	lists     map[string]*schema.MutableList
	vectors   map[string]*schema.MutableVector
	committed bool
	self      state.MutableBeaconState
}

type mutableBeaconStatePhase0 struct{ *mutableBeaconState }
type mutableBeaconStateAltair struct{ *mutableBeaconState }
type mutableBeaconStateBellatrix struct{ *mutableBeaconStateAltair }
type mutableBeaconStateCapella struct{ *mutableBeaconStateBellatrix }
type mutableBeaconStateDeneb struct{ *mutableBeaconStateCapella }
type mutableBeaconStateElectra struct{ *mutableBeaconStateDeneb }

func newMutableState(b *beaconState) state.MutableBeaconState {
	base := &mutableBeaconState{
		mc:      b.Container.ToMutable(),
		version: b.version,
		lists:   make(map[string]*schema.MutableList),
		vectors: make(map[string]*schema.MutableVector),
	}
	v := b.version
	var out state.MutableBeaconState
	switch {
	case v >= version.Electra:
		out = &mutableBeaconStateElectra{&mutableBeaconStateDeneb{&mutableBeaconStateCapella{&mutableBeaconStateBellatrix{&mutableBeaconStateAltair{base}}}}}
	case v >= version.Deneb:
		out = &mutableBeaconStateDeneb{&mutableBeaconStateCapella{&mutableBeaconStateBellatrix{&mutableBeaconStateAltair{base}}}}
	case v >= version.Capella:
		out = &mutableBeaconStateCapella{&mutableBeaconStateBellatrix{&mutableBeaconStateAltair{base}}}
	case v >= version.Bellatrix:
		out = &mutableBeaconStateBellatrix{&mutableBeaconStateAltair{base}}
	case v >= version.Altair:
		out = &mutableBeaconStateAltair{base}
	default:
		out = &mutableBeaconStatePhase0{base}
	}
	base.self = out
	return out
}

func (m *mutableBeaconState) Version() int { return m.version }

func (m *mutableBeaconState) set(name string, v schema.Value) error {
	if m.committed {
		return schema.ErrAlreadyCommitted
	}
	if err := m.mc.SetByName(name, v); err != nil {
		return errors.Wrapf(err, "could not set %s", name)
	}
	return nil
}

// SetFieldByName stages v as the top level field name.
func (m *mutableBeaconState) SetFieldByName(name string, v schema.Value) error {
	return m.set(name, v)
}

func (m *mutableBeaconState) setValue(name string, v schema.Value, err error) error {
	if err != nil {
		return errors.Wrapf(err, "could not build %s", name)
	}
	return m.set(name, v)
}

func (m *mutableBeaconState) mutableList(name string) (*schema.MutableList, error) {
	if m.committed {
		return nil, schema.ErrAlreadyCommitted
	}
	if l, ok := m.lists[name]; ok {
		return l, nil
	}
	i, err := m.mc.ContainerSchema().FieldIndex(name)
	if err != nil {
		return nil, err
	}
	v, err := m.mc.Get(i)
	if err != nil {
		return nil, err
	}
	l, ok := v.(*schema.List)
	if !ok {
		return nil, errors.Wrapf(schema.ErrSchemaMismatch, "%s is not a list", name)
	}
	ml := l.ToMutable()
	m.lists[name] = ml
	return ml, nil
}

func (m *mutableBeaconState) mutableVector(name string) (*schema.MutableVector, error) {
	if m.committed {
		return nil, schema.ErrAlreadyCommitted
	}
	if vec, ok := m.vectors[name]; ok {
		return vec, nil
	}
	i, err := m.mc.ContainerSchema().FieldIndex(name)
	if err != nil {
		return nil, err
	}
	v, err := m.mc.Get(i)
	if err != nil {
		return nil, err
	}
	vec, ok := v.(*schema.Vector)
	if !ok {
		return nil, errors.Wrapf(schema.ErrSchemaMismatch, "%s is not a vector", name)
	}
	mv := vec.ToMutable()
	m.vectors[name] = mv
	return mv, nil
}

func (m *mutableBeaconState) appendTo(name string, v schema.Value) error {
	l, err := m.mutableList(name)
	if err != nil {
		return err
	}
	return errors.Wrapf(l.Append(v), "could not append to %s", name)
}

func (m *mutableBeaconState) updateList(name string, idx uint64, v schema.Value) error {
	l, err := m.mutableList(name)
	if err != nil {
		return err
	}
	return errors.Wrapf(l.Set(idx, v), "could not update %s", name)
}

func (m *mutableBeaconState) updateVector(name string, idx uint64, v schema.Value) error {
	vec, err := m.mutableVector(name)
	if err != nil {
		return err
	}
	return errors.Wrapf(vec.Set(idx, v), "could not update %s", name)
}

func (m *mutableBeaconState) SetGenesisTime(val uint64) error {
	return m.set(genesisTime, schema.Uint64(val))
}

func (m *mutableBeaconState) SetGenesisValidatorsRoot(val [32]byte) error {
	return m.set(genesisValidatorsRoot, schema.NewBytes32(val))
}

func (m *mutableBeaconState) SetSlot(val primitives.Slot) error {
	return m.set(slot, schema.Uint64(val))
}

func (m *mutableBeaconState) SetFork(val *params.Fork) error {
	v, err := forkValue(val)
	return m.setValue(fork, v, err)
}

func (m *mutableBeaconState) SetLatestBlockHeader(val *state.BeaconBlockHeader) error {
	v, err := blockHeaderValue(val)
	return m.setValue(latestBlockHeader, v, err)
}

func (m *mutableBeaconState) UpdateBlockRootAtIndex(idx uint64, val [32]byte) error {
	return m.updateVector(blockRoots, idx, schema.NewBytes32(val))
}

func (m *mutableBeaconState) UpdateStateRootAtIndex(idx uint64, val [32]byte) error {
	return m.updateVector(stateRoots, idx, schema.NewBytes32(val))
}

func (m *mutableBeaconState) AppendHistoricalRoots(val [32]byte) error {
	return m.appendTo(historicalRoots, schema.NewBytes32(val))
}

func (m *mutableBeaconState) SetEth1Data(val *state.Eth1Data) error {
	v, err := eth1DataValue(val)
	return m.setValue(eth1Data, v, err)
}

func (m *mutableBeaconState) AppendEth1DataVotes(val *state.Eth1Data) error {
	v, err := eth1DataValue(val)
	if err != nil {
		return err
	}
	return m.appendTo(eth1DataVotes, v)
}

func (m *mutableBeaconState) SetEth1DepositIndex(val uint64) error {
	return m.set(eth1DepositIndex, schema.Uint64(val))
}

// AppendValidator appends a registry entry. Balances are appended separately.
func (m *mutableBeaconState) AppendValidator(val *state.Validator) error {
	v, err := ValidatorValue(val)
	if err != nil {
		return err
	}
	return m.appendTo(validators, v)
}

func (m *mutableBeaconState) UpdateValidatorAtIndex(idx primitives.ValidatorIndex, val *state.Validator) error {
	v, err := ValidatorValue(val)
	if err != nil {
		return err
	}
	return m.updateList(validators, uint64(idx), v)
}

func (m *mutableBeaconState) AppendBalance(bal uint64) error {
	return m.appendTo(balances, schema.Uint64(bal))
}

func (m *mutableBeaconState) UpdateBalancesAtIndex(idx primitives.ValidatorIndex, val uint64) error {
	return m.updateList(balances, uint64(idx), schema.Uint64(val))
}

func (m *mutableBeaconState) UpdateRandaoMixesAtIndex(idx uint64, val [32]byte) error {
	return m.updateVector(randaoMixes, idx, schema.NewBytes32(val))
}

func (m *mutableBeaconState) UpdateSlashingsAtIndex(idx uint64, val primitives.Gwei) error {
	return m.updateVector(slashings, idx, schema.Uint64(val))
}

func (m *mutableBeaconState) SetJustificationBits(val bitfield.Bitvector4) error {
	v, err := schema.NewBitvector(justificationBitsSchema, val.Bytes())
	return m.setValue(justificationBits, v, err)
}

func (m *mutableBeaconState) SetPreviousJustifiedCheckpoint(val *state.Checkpoint) error {
	v, err := checkpointValue(val)
	return m.setValue(previousJustifiedCheckpoint, v, err)
}

func (m *mutableBeaconState) SetCurrentJustifiedCheckpoint(val *state.Checkpoint) error {
	v, err := checkpointValue(val)
	return m.setValue(currentJustifiedCheckpoint, v, err)
}

func (m *mutableBeaconState) SetFinalizedCheckpoint(val *state.Checkpoint) error {
	v, err := checkpointValue(val)
	return m.setValue(finalizedCheckpoint, v, err)
}

// Commit folds the staged sequences into the container and returns the new
// state. The mutable state cannot be used afterwards, even when Commit fails.
func (m *mutableBeaconState) Commit() (state.BeaconState, error) {
	if m.committed {
		return nil, schema.ErrAlreadyCommitted
	}
	m.committed = true
	defer func() { m.lists, m.vectors = nil, nil }()
	for name, l := range m.lists {
		committed, err := l.Commit()
		if err != nil {
			return nil, errors.Wrapf(err, "could not commit %s", name)
		}
		if err := m.mc.SetByName(name, committed); err != nil {
			return nil, err
		}
	}
	for name, vec := range m.vectors {
		committed, err := vec.Commit()
		if err != nil {
			return nil, errors.Wrapf(err, "could not commit %s", name)
		}
		if err := m.mc.SetByName(name, committed); err != nil {
			return nil, err
		}
	}
	v, err := m.mc.Commit()
	if err != nil {
		return nil, err
	}
	return v.(state.BeaconState), nil
}

func (m *mutableBeaconState) ToMutableVersionPhase0() (state.MutableBeaconStatePhase0, bool) {
	s, ok := m.self.(state.MutableBeaconStatePhase0)
	return s, ok
}

func (m *mutableBeaconState) ToMutableVersionAltair() (state.MutableBeaconStateAltair, bool) {
	if m.version < version.Altair {
		return nil, false
	}
	s, ok := m.self.(state.MutableBeaconStateAltair)
	return s, ok
}

func (m *mutableBeaconState) ToMutableVersionBellatrix() (state.MutableBeaconStateBellatrix, bool) {
	if m.version < version.Bellatrix {
		return nil, false
	}
	s, ok := m.self.(state.MutableBeaconStateBellatrix)
	return s, ok
}

func (m *mutableBeaconState) ToMutableVersionCapella() (state.MutableBeaconStateCapella, bool) {
	if m.version < version.Capella {
		return nil, false
	}
	s, ok := m.self.(state.MutableBeaconStateCapella)
	return s, ok
}

func (m *mutableBeaconState) ToMutableVersionDeneb() (state.MutableBeaconStateDeneb, bool) {
	if m.version < version.Deneb {
		return nil, false
	}
	s, ok := m.self.(state.MutableBeaconStateDeneb)
	return s, ok
}

func (m *mutableBeaconState) ToMutableVersionElectra() (state.MutableBeaconStateElectra, bool) {
	if m.version < version.Electra {
		return nil, false
	}
	s, ok := m.self.(state.MutableBeaconStateElectra)
	return s, ok
}

func (m *mutableBeaconStatePhase0) AppendPreviousEpochAttestations(val *state.PendingAttestation) error {
	v, err := pendingAttestationValue(val)
	if err != nil {
		return err
	}
	return m.appendTo(previousEpochAttestations, v)
}

func (m *mutableBeaconStatePhase0) AppendCurrentEpochAttestations(val *state.PendingAttestation) error {
	v, err := pendingAttestationValue(val)
	if err != nil {
		return err
	}
	return m.appendTo(currentEpochAttestations, v)
}

func (m *mutableBeaconStateAltair) AppendPreviousParticipationBits(val byte) error {
	return m.appendTo(previousEpochParticipation, schema.Uint8(val))
}

func (m *mutableBeaconStateAltair) AppendCurrentParticipationBits(val byte) error {
	return m.appendTo(currentEpochParticipation, schema.Uint8(val))
}

func (m *mutableBeaconStateAltair) AppendInactivityScore(s uint64) error {
	return m.appendTo(inactivityScores, schema.Uint64(s))
}

func (m *mutableBeaconStateAltair) SetCurrentSyncCommittee(val *state.SyncCommittee) error {
	v, err := syncCommitteeValue(val)
	return m.setValue(currentSyncCommittee, v, err)
}

func (m *mutableBeaconStateAltair) SetNextSyncCommittee(val *state.SyncCommittee) error {
	v, err := syncCommitteeValue(val)
	return m.setValue(nextSyncCommittee, v, err)
}

// SetLatestExecutionPayloadHeader stores h, which must be a header of the
// state's own fork.
func (m *mutableBeaconStateBellatrix) SetLatestExecutionPayloadHeader(h interfaces.ExecutionPayloadHeader) error {
	if h == nil {
		return errors.Wrap(errNilValue, "execution payload header")
	}
	if h.Version() != m.version {
		return interfaces.NewUnsupportedVersionError(h.Version(), m.version)
	}
	return m.set(latestExecutionPayloadHeader, h)
}

func (m *mutableBeaconStateCapella) SetNextWithdrawalIndex(i uint64) error {
	return m.set(nextWithdrawalIndex, schema.Uint64(i))
}

func (m *mutableBeaconStateCapella) SetNextWithdrawalValidatorIndex(i primitives.ValidatorIndex) error {
	return m.set(nextWithdrawalValidatorIdx, schema.Uint64(i))
}

func (m *mutableBeaconStateCapella) AppendHistoricalSummaries(val *state.HistoricalSummary) error {
	v, err := historicalSummaryValue(val)
	if err != nil {
		return err
	}
	return m.appendTo(historicalSummaries, v)
}

func (m *mutableBeaconStateElectra) SetDepositReceiptsStartIndex(index uint64) error {
	return m.set(depositReceiptsStartIndex, schema.Uint64(index))
}

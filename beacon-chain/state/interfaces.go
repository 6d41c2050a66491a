// Package state defines the beacon state capability chains. A state of fork k
// satisfies the read only and mutable interfaces of every fork from Phase0 up
// to k. The pending attestation lists dropped at Altair are a separate field
// group, reachable through RequirePendingAttestations.
package state

import (
	"github.com/YoutacRandS-VA/teku/config/params"
	"github.com/YoutacRandS-VA/teku/consensus-types/interfaces"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/prysmaticlabs/go-bitfield"
)

// BeaconState is an immutable beacon state of any fork.
type BeaconState interface {
	ReadOnlyBeaconState
	// ToMutable returns a staging copy. The receiver is never modified.
	ToMutable() MutableBeaconState
}

// ReadOnlyBeaconState holds the accessors every fork shares.
type ReadOnlyBeaconState interface {
	schema.Value
	Version() int
	GenesisTime() uint64
	GenesisValidatorsRoot() [32]byte
	Slot() primitives.Slot
	Fork() *params.Fork
	LatestBlockHeader() *BeaconBlockHeader
	BlockRootAtIndex(idx uint64) ([32]byte, error)
	StateRootAtIndex(idx uint64) ([32]byte, error)
	HistoricalRoots() [][32]byte
	Eth1Data() *Eth1Data
	Eth1DataVotes() []*Eth1Data
	Eth1DepositIndex() uint64
	NumValidators() int
	ValidatorAtIndex(idx primitives.ValidatorIndex) (*Validator, error)
	Balances() []uint64
	BalanceAtIndex(idx primitives.ValidatorIndex) (uint64, error)
	RandaoMixAtIndex(idx uint64) ([32]byte, error)
	SlashingAtIndex(idx uint64) (primitives.Gwei, error)
	JustificationBits() bitfield.Bitvector4
	PreviousJustifiedCheckpoint() *Checkpoint
	CurrentJustifiedCheckpoint() *Checkpoint
	FinalizedCheckpoint() *Checkpoint

	ToVersionPhase0() (BeaconStatePhase0, bool)
	ToVersionAltair() (BeaconStateAltair, bool)
	ToVersionBellatrix() (BeaconStateBellatrix, bool)
	ToVersionCapella() (BeaconStateCapella, bool)
	ToVersionDeneb() (BeaconStateDeneb, bool)
	ToVersionElectra() (BeaconStateElectra, bool)
}

// BeaconStatePhase0 is the root of the chain: the fields every fork keeps.
type BeaconStatePhase0 interface {
	BeaconState
}

// PendingAttestationsState is a Phase0 state. Altair replaced these lists with
// participation flags, so later states do not carry them.
type PendingAttestationsState interface {
	BeaconStatePhase0
	PreviousEpochAttestations() []*PendingAttestation
	CurrentEpochAttestations() []*PendingAttestation
}

type BeaconStateAltair interface {
	BeaconStatePhase0
	PreviousEpochParticipation() []byte
	CurrentEpochParticipation() []byte
	InactivityScores() []uint64
	CurrentSyncCommittee() *SyncCommittee
	NextSyncCommittee() *SyncCommittee
}

type BeaconStateBellatrix interface {
	BeaconStateAltair
	LatestExecutionPayloadHeader() interfaces.ExecutionPayloadHeader
}

type BeaconStateCapella interface {
	BeaconStateBellatrix
	NextWithdrawalIndex() uint64
	NextWithdrawalValidatorIndex() primitives.ValidatorIndex
	HistoricalSummaries() []*HistoricalSummary
}

// BeaconStateDeneb adds no fields. Its payload header is a Deneb header.
type BeaconStateDeneb interface {
	BeaconStateCapella
}

type BeaconStateElectra interface {
	BeaconStateDeneb
	DepositReceiptsStartIndex() uint64
}

// MutableBeaconState stages writes to a state. It is not safe for concurrent
// use and is spent after Commit.
type MutableBeaconState interface {
	Version() int
	SetGenesisTime(val uint64) error
	SetGenesisValidatorsRoot(val [32]byte) error
	SetSlot(val primitives.Slot) error
	SetFork(val *params.Fork) error
	SetLatestBlockHeader(val *BeaconBlockHeader) error
	UpdateBlockRootAtIndex(idx uint64, val [32]byte) error
	UpdateStateRootAtIndex(idx uint64, val [32]byte) error
	AppendHistoricalRoots(val [32]byte) error
	SetEth1Data(val *Eth1Data) error
	AppendEth1DataVotes(val *Eth1Data) error
	SetEth1DepositIndex(val uint64) error
	AppendValidator(val *Validator) error
	UpdateValidatorAtIndex(idx primitives.ValidatorIndex, val *Validator) error
	AppendBalance(bal uint64) error
	UpdateBalancesAtIndex(idx primitives.ValidatorIndex, val uint64) error
	UpdateRandaoMixesAtIndex(idx uint64, val [32]byte) error
	UpdateSlashingsAtIndex(idx uint64, val primitives.Gwei) error
	SetJustificationBits(val bitfield.Bitvector4) error
	SetPreviousJustifiedCheckpoint(val *Checkpoint) error
	SetCurrentJustifiedCheckpoint(val *Checkpoint) error
	SetFinalizedCheckpoint(val *Checkpoint) error
	// Commit returns the new immutable state. Untouched fields share their
	// subtrees with the original.
	Commit() (BeaconState, error)

	ToMutableVersionPhase0() (MutableBeaconStatePhase0, bool)
	ToMutableVersionAltair() (MutableBeaconStateAltair, bool)
	ToMutableVersionBellatrix() (MutableBeaconStateBellatrix, bool)
	ToMutableVersionCapella() (MutableBeaconStateCapella, bool)
	ToMutableVersionDeneb() (MutableBeaconStateDeneb, bool)
	ToMutableVersionElectra() (MutableBeaconStateElectra, bool)
}

type MutableBeaconStatePhase0 interface {
	MutableBeaconState
}

type MutablePendingAttestationsState interface {
	MutableBeaconStatePhase0
	AppendPreviousEpochAttestations(val *PendingAttestation) error
	AppendCurrentEpochAttestations(val *PendingAttestation) error
}

type MutableBeaconStateAltair interface {
	MutableBeaconStatePhase0
	AppendPreviousParticipationBits(val byte) error
	AppendCurrentParticipationBits(val byte) error
	AppendInactivityScore(s uint64) error
	SetCurrentSyncCommittee(val *SyncCommittee) error
	SetNextSyncCommittee(val *SyncCommittee) error
}

type MutableBeaconStateBellatrix interface {
	MutableBeaconStateAltair
	// SetLatestExecutionPayloadHeader rejects headers of another fork.
	SetLatestExecutionPayloadHeader(val interfaces.ExecutionPayloadHeader) error
}

type MutableBeaconStateCapella interface {
	MutableBeaconStateBellatrix
	SetNextWithdrawalIndex(i uint64) error
	SetNextWithdrawalValidatorIndex(i primitives.ValidatorIndex) error
	AppendHistoricalSummaries(val *HistoricalSummary) error
}

type MutableBeaconStateDeneb interface {
	MutableBeaconStateCapella
}

type MutableBeaconStateElectra interface {
	MutableBeaconStateDeneb
	SetDepositReceiptsStartIndex(index uint64) error
}

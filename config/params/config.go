// Package params defines the chain configuration: preset values, the fork
// schedule and client policy knobs, with mainnet and minimal presets and
// YAML overrides.
package params

import (
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
)

// BeaconChainConfig contains constant configs for node to participate in beacon chain.
type BeaconChainConfig struct {
	// Constants (non-configurable)
	FarFutureEpoch primitives.Epoch `json:"-"` // FarFutureEpoch represents a epoch extremely far away in the future used as the default penalization epoch for validators.
	GenesisEpoch   primitives.Epoch `json:"-"` // GenesisEpoch is the epoch of the genesis block.
	GenesisSlot    primitives.Slot  `json:"-"` // GenesisSlot is the slot of the genesis block.

	// Preset and network names.
	ConfigName string `json:"CONFIG_NAME"` // ConfigName for allowing an easy human-readable way of knowing what chain is being used.
	PresetBase string `json:"PRESET_BASE"` // PresetBase represents the underlying spec preset this config is based on.

	// Time parameters.
	SecondsPerSlot uint64          `json:"SECONDS_PER_SLOT"` // SecondsPerSlot is how many seconds are in a single slot.
	SlotsPerEpoch  primitives.Slot `json:"SLOTS_PER_EPOCH"`  // SlotsPerEpoch is the number of slots in an epoch.
	MinGenesisTime uint64          `json:"MIN_GENESIS_TIME"` // MinGenesisTime is the time that needed to pass before kicking off beacon chain.
	GenesisDelay   uint64          `json:"GENESIS_DELAY"`    // GenesisDelay is the minimum number of seconds to delay starting the Ethereum Beacon Chain genesis.

	// Gwei values.
	MaxEffectiveBalance uint64 `json:"MAX_EFFECTIVE_BALANCE"` // MaxEffectiveBalance is the maximal amount of Gwei that is effective for staking.

	// Fork schedule.
	GenesisForkVersion   hexutil.Bytes    `json:"GENESIS_FORK_VERSION"`   // GenesisForkVersion is used to track fork version between state transitions.
	AltairForkVersion    hexutil.Bytes    `json:"ALTAIR_FORK_VERSION"`    // AltairForkVersion is used to represent the fork version for altair.
	AltairForkEpoch      primitives.Epoch `json:"ALTAIR_FORK_EPOCH"`      // AltairForkEpoch is used to represent the assigned fork epoch for altair.
	BellatrixForkVersion hexutil.Bytes    `json:"BELLATRIX_FORK_VERSION"` // BellatrixForkVersion is used to represent the fork version for bellatrix.
	BellatrixForkEpoch   primitives.Epoch `json:"BELLATRIX_FORK_EPOCH"`   // BellatrixForkEpoch is used to represent the assigned fork epoch for bellatrix.
	CapellaForkVersion   hexutil.Bytes    `json:"CAPELLA_FORK_VERSION"`   // CapellaForkVersion is used to represent the fork version for capella.
	CapellaForkEpoch     primitives.Epoch `json:"CAPELLA_FORK_EPOCH"`     // CapellaForkEpoch is used to represent the assigned fork epoch for capella.
	DenebForkVersion     hexutil.Bytes    `json:"DENEB_FORK_VERSION"`     // DenebForkVersion is used to represent the fork version for deneb.
	DenebForkEpoch       primitives.Epoch `json:"DENEB_FORK_EPOCH"`       // DenebForkEpoch is used to represent the assigned fork epoch for deneb.
	ElectraForkVersion   hexutil.Bytes    `json:"ELECTRA_FORK_VERSION"`   // ElectraForkVersion is used to represent the fork version for electra.
	ElectraForkEpoch     primitives.Epoch `json:"ELECTRA_FORK_EPOCH"`     // ElectraForkEpoch is used to represent the assigned fork epoch for electra.

	// Networking.
	GossipMaxSize uint64 `json:"GOSSIP_MAX_SIZE"` // GossipMaxSize is the maximum allowed size of uncompressed gossip messages.
	MaxChunkSize  uint64 `json:"MAX_CHUNK_SIZE"`  // MaxChunkSize is the maximum allowed size of uncompressed req/resp chunked responses.

	// Electra.
	UnsetDepositReceiptsStartIndex uint64 `json:"UNSET_DEPOSIT_RECEIPTS_START_INDEX"` // UnsetDepositReceiptsStartIndex marks a state that has not yet seen a deposit receipt.

	// Client policy.
	ExecutionPayloadCacheRetentionSlots primitives.Slot `json:"EXECUTION_PAYLOAD_CACHE_RETENTION_SLOTS"` // ExecutionPayloadCacheRetentionSlots is how many slots produced payload results are kept.
	BuilderPayloadCacheRetentionSlots   primitives.Slot `json:"BUILDER_PAYLOAD_CACHE_RETENTION_SLOTS"`   // BuilderPayloadCacheRetentionSlots is how many slots unblinded builder payloads are kept.

	GenesisValidatorsRoot [32]byte `json:"-"` // GenesisValidatorsRoot is the root hash of the genesis validators.
}

// Copy returns a deep copy of the config.
func (b *BeaconChainConfig) Copy() *BeaconChainConfig {
	c := *b
	c.GenesisForkVersion = copyBytes(b.GenesisForkVersion)
	c.AltairForkVersion = copyBytes(b.AltairForkVersion)
	c.BellatrixForkVersion = copyBytes(b.BellatrixForkVersion)
	c.CapellaForkVersion = copyBytes(b.CapellaForkVersion)
	c.DenebForkVersion = copyBytes(b.DenebForkVersion)
	c.ElectraForkVersion = copyBytes(b.ElectraForkVersion)
	return &c
}

func copyBytes(b hexutil.Bytes) hexutil.Bytes {
	if b == nil {
		return nil
	}
	return append(hexutil.Bytes{}, b...)
}

type forkEntry struct {
	version int
	epoch   primitives.Epoch
	bytes   hexutil.Bytes
}

// forks lists the schedule in activation order.
func (b *BeaconChainConfig) forks() []forkEntry {
	return []forkEntry{
		{version: version.Phase0, epoch: b.GenesisEpoch, bytes: b.GenesisForkVersion},
		{version: version.Altair, epoch: b.AltairForkEpoch, bytes: b.AltairForkVersion},
		{version: version.Bellatrix, epoch: b.BellatrixForkEpoch, bytes: b.BellatrixForkVersion},
		{version: version.Capella, epoch: b.CapellaForkEpoch, bytes: b.CapellaForkVersion},
		{version: version.Deneb, epoch: b.DenebForkEpoch, bytes: b.DenebForkVersion},
		{version: version.Electra, epoch: b.ElectraForkEpoch, bytes: b.ElectraForkVersion},
	}
}

// VersionAtEpoch returns the fork version active at epoch e.
func (b *BeaconChainConfig) VersionAtEpoch(e primitives.Epoch) int {
	v := version.Phase0
	for _, f := range b.forks() {
		if e >= f.epoch {
			v = f.version
		}
	}
	return v
}

// ForkEpoch returns the activation epoch of fork version v.
func (b *BeaconChainConfig) ForkEpoch(v int) (primitives.Epoch, error) {
	for _, f := range b.forks() {
		if f.version == v {
			return f.epoch, nil
		}
	}
	return 0, errors.Errorf("unknown fork version %d", v)
}

// ForkVersionBytes returns the 4 byte fork version of fork v.
func (b *BeaconChainConfig) ForkVersionBytes(v int) ([4]byte, error) {
	for _, f := range b.forks() {
		if f.version == v {
			var out [4]byte
			copy(out[:], f.bytes)
			return out, nil
		}
	}
	return [4]byte{}, errors.Errorf("unknown fork version %d", v)
}

// VersionFromForkVersionBytes maps 4 fork version bytes back to the fork.
func (b *BeaconChainConfig) VersionFromForkVersionBytes(fv [4]byte) (int, error) {
	for _, f := range b.forks() {
		if len(f.bytes) == 4 && [4]byte(f.bytes) == fv {
			return f.version, nil
		}
	}
	return 0, errors.Errorf("no fork with version %#x", fv)
}

package params

import (
	"math"
)

// MainnetName is the name of the mainnet config.
const MainnetName = "mainnet"

// MainnetConfig returns the configuration to be used in the main network.
func MainnetConfig() *BeaconChainConfig {
	return mainnetBeaconConfig.Copy()
}

var mainnetBeaconConfig = &BeaconChainConfig{
	FarFutureEpoch: math.MaxUint64,
	GenesisEpoch:   0,
	GenesisSlot:    0,

	ConfigName: MainnetName,
	PresetBase: "mainnet",

	SecondsPerSlot: 12,
	SlotsPerEpoch:  32,
	MinGenesisTime: 1606824000,
	GenesisDelay:   604800,

	MaxEffectiveBalance: 32 * 1e9,

	GenesisForkVersion:   []byte{0, 0, 0, 0},
	AltairForkVersion:    []byte{1, 0, 0, 0},
	AltairForkEpoch:      74240,
	BellatrixForkVersion: []byte{2, 0, 0, 0},
	BellatrixForkEpoch:   144896,
	CapellaForkVersion:   []byte{3, 0, 0, 0},
	CapellaForkEpoch:     194048,
	DenebForkVersion:     []byte{4, 0, 0, 0},
	DenebForkEpoch:       269568,
	ElectraForkVersion:   []byte{5, 0, 0, 0},
	ElectraForkEpoch:     364032,

	GossipMaxSize: 10 * 1 << 20,
	MaxChunkSize:  10 * 1 << 20,

	UnsetDepositReceiptsStartIndex: math.MaxUint64,

	ExecutionPayloadCacheRetentionSlots: 2,
	BuilderPayloadCacheRetentionSlots:   2,
}

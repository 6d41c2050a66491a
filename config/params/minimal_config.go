package params

import (
	"math"
)

// MinimalName is the name of the minimal config.
const MinimalName = "minimal"

// MinimalSpecConfig retrieves the minimal config used in spec tests.
func MinimalSpecConfig() *BeaconChainConfig {
	minimalConfig := mainnetBeaconConfig.Copy()

	minimalConfig.ConfigName = MinimalName
	minimalConfig.PresetBase = "minimal"

	minimalConfig.SecondsPerSlot = 6
	minimalConfig.SlotsPerEpoch = 8
	minimalConfig.MinGenesisTime = 1578009600
	minimalConfig.GenesisDelay = 300

	minimalConfig.GenesisForkVersion = []byte{0, 0, 0, 1}
	minimalConfig.AltairForkVersion = []byte{1, 0, 0, 1}
	minimalConfig.AltairForkEpoch = math.MaxUint64
	minimalConfig.BellatrixForkVersion = []byte{2, 0, 0, 1}
	minimalConfig.BellatrixForkEpoch = math.MaxUint64
	minimalConfig.CapellaForkVersion = []byte{3, 0, 0, 1}
	minimalConfig.CapellaForkEpoch = math.MaxUint64
	minimalConfig.DenebForkVersion = []byte{4, 0, 0, 1}
	minimalConfig.DenebForkEpoch = math.MaxUint64
	minimalConfig.ElectraForkVersion = []byte{5, 0, 0, 1}
	minimalConfig.ElectraForkEpoch = math.MaxUint64

	return minimalConfig
}

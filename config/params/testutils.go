package params

import (
	"testing"

	"github.com/YoutacRandS-VA/teku/runtime/version"
)

// SetGenesisFork activates every fork up to and including fork at genesis on
// cfg and makes it the active config.
func SetGenesisFork(t testing.TB, cfg *BeaconChainConfig, fork int) {
	setGenesisUpdateEpochs(cfg, fork)
	OverrideBeaconConfig(cfg)
}

func setGenesisUpdateEpochs(b *BeaconChainConfig, fork int) {
	switch fork {
	case version.Electra:
		b.ElectraForkEpoch = 0
		setGenesisUpdateEpochs(b, version.Deneb)
	case version.Deneb:
		b.DenebForkEpoch = 0
		setGenesisUpdateEpochs(b, version.Capella)
	case version.Capella:
		b.CapellaForkEpoch = 0
		setGenesisUpdateEpochs(b, version.Bellatrix)
	case version.Bellatrix:
		b.BellatrixForkEpoch = 0
		setGenesisUpdateEpochs(b, version.Altair)
	case version.Altair:
		b.AltairForkEpoch = 0
	}
}

// SetupTestConfigCleanup preserves configurations allowing to modify them within tests without any
// restrictions, everything is restored after the test.
func SetupTestConfigCleanup(t testing.TB) {
	prevDefaultBeaconConfig := mainnetBeaconConfig.Copy()
	temp := configs.getActive().Copy()
	undo, err := SetActiveWithUndo(temp)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		mainnetBeaconConfig = prevDefaultBeaconConfig
		if err := undo(); err != nil {
			t.Fatal(err)
		}
	})
}

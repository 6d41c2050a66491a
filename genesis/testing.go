package genesis

import (
	"testing"

	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
)

// StoreDuringTest temporarily replaces the package level GenesisData with the provided GenesisData
func StoreDuringTest(t *testing.T, gd GenesisData) {
	prev := getPkgVar()
	t.Cleanup(func() {
		setPkgVar(prev, prev.initialized)
	})
	setPkgVar(gd, true)
}

// StoreStateDuringTest creates and stores genesis data from a beacon state for the duration of a test,
// restoring the previous genesis data afterwards. Nothing is written to disk.
func StoreStateDuringTest(t *testing.T, st state.BeaconState) {
	gd, err := newGenesisData(st, "testdata")
	if err != nil {
		t.Fatalf("failed to create genesis data: %v", err)
	}
	StoreDuringTest(t, gd)
}

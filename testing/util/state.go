// Package util builds deterministic states and payloads for tests.
package util

import (
	"testing"

	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/genesis"
	"github.com/YoutacRandS-VA/teku/runtime/interop"
	"github.com/stretchr/testify/require"
)

// DeterministicGenesisTime is the genesis time of every deterministic state.
const DeterministicGenesisTime = 1606824023

// DeterministicValidators returns n active validators with max effective
// balance and BLS withdrawal credentials.
func DeterministicValidators(n uint64) ([]*state.Validator, []uint64) {
	return interop.DeterministicValidators(n, 0)
}

// DeterministicGenesisState returns the genesis state of fork v with n
// deterministic validators.
func DeterministicGenesisState(t testing.TB, v int, n uint64) state.BeaconState {
	vals, bals := DeterministicValidators(n)
	st, err := genesis.NewGenesisState(v, DeterministicGenesisTime, vals, bals)
	require.NoError(t, err)
	return st
}

// StateAtSlot returns a copy of st advanced to slot. Only the slot changes.
func StateAtSlot(t testing.TB, st state.BeaconState, slot primitives.Slot) state.BeaconState {
	m := st.ToMutable()
	require.NoError(t, m.SetSlot(slot))
	out, err := m.Commit()
	require.NoError(t, err)
	return out
}

package stateutil_test

import (
	"testing"

	"github.com/YoutacRandS-VA/teku/beacon-chain/state"
	state_native "github.com/YoutacRandS-VA/teku/beacon-chain/state/state-native"
	"github.com/YoutacRandS-VA/teku/beacon-chain/state/stateutil"
	fieldparams "github.com/YoutacRandS-VA/teku/config/fieldparams"
	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fieldRoot(t *testing.T, st state.BeaconState, name string) [32]byte {
	v, err := st.(interface {
		GetByName(string) (schema.Value, error)
	}).GetByName(name)
	require.NoError(t, err)
	return v.HashTreeRoot()
}

func populated(t *testing.T) state.BeaconState {
	st, err := state_native.InitializeDefault(version.Electra)
	require.NoError(t, err)
	m, err := state.RequireMutableElectra(st.ToMutable())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		require.NoError(t, m.AppendValidator(&state.Validator{
			PublicKey:         [48]byte{byte(i), 0xff},
			EffectiveBalance:  32e9,
			Slashed:           i%2 == 0,
			ExitEpoch:         1 << 40,
			WithdrawableEpoch: 1<<40 + 256,
		}))
		require.NoError(t, m.AppendBalance(32e9-uint64(i)))
		require.NoError(t, m.AppendInactivityScore(uint64(i)))
		require.NoError(t, m.AppendHistoricalSummaries(&state.HistoricalSummary{
			BlockSummaryRoot: [32]byte{byte(i)},
			StateSummaryRoot: [32]byte{0, byte(i)},
		}))
	}
	require.NoError(t, m.UpdateRandaoMixesAtIndex(3, [32]byte{3}))
	require.NoError(t, m.UpdateRandaoMixesAtIndex(fieldparams.RandaoMixesLength-1, [32]byte{9}))
	st, err = m.Commit()
	require.NoError(t, err)
	return st
}

func TestRootsMatchTree(t *testing.T) {
	st := populated(t)
	e, err := state.RequireElectra(st)
	require.NoError(t, err)

	t.Run("balances", func(t *testing.T) {
		got, err := stateutil.Uint64ListRootWithRegistryLimit(st.Balances())
		require.NoError(t, err)
		assert.Equal(t, fieldRoot(t, st, "balances"), got)
	})
	t.Run("inactivity scores", func(t *testing.T) {
		got, err := stateutil.Uint64ListRootWithRegistryLimit(e.InactivityScores())
		require.NoError(t, err)
		assert.Equal(t, fieldRoot(t, st, "inactivity_scores"), got)
	})
	t.Run("historical summaries", func(t *testing.T) {
		got, err := stateutil.HistoricalSummariesRoot(e.HistoricalSummaries())
		require.NoError(t, err)
		assert.Equal(t, fieldRoot(t, st, "historical_summaries"), got)
	})
	t.Run("validator", func(t *testing.T) {
		val, err := st.ValidatorAtIndex(2)
		require.NoError(t, err)
		got, err := stateutil.ValidatorRoot(val)
		require.NoError(t, err)
		tv, err := state_native.ValidatorValue(val)
		require.NoError(t, err)
		assert.Equal(t, tv.HashTreeRoot(), got)
	})
	t.Run("validator registry", func(t *testing.T) {
		vals := make([]*state.Validator, st.NumValidators())
		for i := range vals {
			vals[i], err = st.ValidatorAtIndex(primitives.ValidatorIndex(i))
			require.NoError(t, err)
		}
		got, err := stateutil.ValidatorRegistryRoot(vals)
		require.NoError(t, err)
		assert.Equal(t, fieldRoot(t, st, "validators"), got)
	})
	t.Run("randao mixes", func(t *testing.T) {
		mixes := make([][32]byte, fieldparams.RandaoMixesLength)
		for i := range mixes {
			mixes[i], err = st.RandaoMixAtIndex(uint64(i))
			require.NoError(t, err)
		}
		got, err := stateutil.RandaoMixesRoot(mixes)
		require.NoError(t, err)
		assert.Equal(t, fieldRoot(t, st, "randao_mixes"), got)
	})
}

func TestEmptyListRoots(t *testing.T) {
	st, err := state_native.InitializeDefault(version.Capella)
	require.NoError(t, err)
	got, err := stateutil.Uint64ListRootWithRegistryLimit(nil)
	require.NoError(t, err)
	assert.Equal(t, fieldRoot(t, st, "balances"), got)

	got, err = stateutil.HistoricalSummariesRoot(nil)
	require.NoError(t, err)
	assert.Equal(t, fieldRoot(t, st, "historical_summaries"), got)

	got, err = stateutil.ValidatorRegistryRoot(nil)
	require.NoError(t, err)
	assert.Equal(t, fieldRoot(t, st, "validators"), got)
}

func TestRootErrors(t *testing.T) {
	_, err := stateutil.RandaoMixesRoot(make([][32]byte, 3))
	assert.Error(t, err)
	_, err = stateutil.ValidatorRoot(nil)
	assert.Error(t, err)
	_, err = stateutil.ValidatorRegistryRoot([]*state.Validator{{}, nil})
	assert.Error(t, err)
	_, err = stateutil.HistoricalSummariesRoot([]*state.HistoricalSummary{nil})
	assert.Error(t, err)
}

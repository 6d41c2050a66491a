package state_native

import (
	"testing"

	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/runtime/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommit_FailureSpendsState(t *testing.T) {
	st, err := InitializeDefault(version.Altair)
	require.NoError(t, err)
	m := st.ToMutable()
	require.NoError(t, m.AppendBalance(1))
	require.NoError(t, m.UpdateRandaoMixesAtIndex(0, [32]byte{1}))

	base := m.(*mutableBeaconStateAltair).mutableBeaconState
	_, err = base.lists[balances].Commit()
	require.NoError(t, err)

	_, err = m.Commit()
	assert.ErrorIs(t, err, schema.ErrAlreadyCommitted)
	assert.Nil(t, base.lists)
	assert.Nil(t, base.vectors)

	_, err = m.Commit()
	assert.ErrorIs(t, err, schema.ErrAlreadyCommitted)
	assert.ErrorIs(t, m.SetSlot(1), schema.ErrAlreadyCommitted)
	assert.ErrorIs(t, m.AppendBalance(2), schema.ErrAlreadyCommitted)
}

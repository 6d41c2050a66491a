package util

import (
	"testing"

	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/YoutacRandS-VA/teku/time/slots"
	"github.com/stretchr/testify/require"
)

func SlotAtEpoch(t *testing.T, e primitives.Epoch) primitives.Slot {
	s, err := slots.EpochStart(e)
	require.NoError(t, err)
	return s
}

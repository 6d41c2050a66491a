package primitives_test

import (
	"encoding/binary"
	"slices"
	"strconv"
	"testing"

	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestSlot_SSZRoundTripAndHashRoot(t *testing.T) {
	cases := []uint64{
		0,
		1,
		42,
		(1 << 32) - 1,
		1 << 32,
		^uint64(0),
	}

	for _, v := range cases {
		v := v
		t.Run("v="+strconv.FormatUint(v, 10), func(t *testing.T) {
			t.Parallel()

			val := primitives.Slot(v)
			require.Equal(t, 8, (&val).SizeSSZ())

			enc, err := (&val).MarshalSSZ()
			require.NoError(t, err)
			wantEnc := make([]byte, 8)
			binary.LittleEndian.PutUint64(wantEnc, v)
			require.Equal(t, wantEnc, enc)

			dstPrefix := []byte("prefix:")
			dst, err := (&val).MarshalSSZTo(slices.Clone(dstPrefix))
			require.NoError(t, err)
			require.Equal(t, append(dstPrefix, wantEnc...), dst)

			var decoded primitives.Slot
			require.NoError(t, (&decoded).UnmarshalSSZ(enc))
			require.Equal(t, val, decoded)

			root, err := val.HashTreeRoot()
			require.NoError(t, err)
			var wantRoot [32]byte
			copy(wantRoot[:], wantEnc)
			require.Equal(t, wantRoot, root)

			epoch := primitives.Epoch(v)
			eroot, err := epoch.HashTreeRoot()
			require.NoError(t, err)
			require.Equal(t, wantRoot, eroot)
		})
	}
}

func TestSlot_UnmarshalWrongSize(t *testing.T) {
	var s primitives.Slot
	require.Error(t, s.UnmarshalSSZ([]byte{1, 2, 3}))
	var i primitives.ValidatorIndex
	require.Error(t, i.UnmarshalSSZ(make([]byte, 9)))
}

func TestSlot_Arithmetic(t *testing.T) {
	require.Equal(t, primitives.Slot(0), primitives.Slot(10).SubSlot(13))
	require.Equal(t, primitives.Slot(8), primitives.Slot(10).SubSlot(2))
	_, err := primitives.Slot(1).SafeSub(2)
	require.ErrorIs(t, err, primitives.ErrSlotUnderflow)
	s, err := primitives.Slot(5).SafeSub(2)
	require.NoError(t, err)
	require.Equal(t, primitives.Slot(3), s)
	require.Equal(t, primitives.MaxSlot, primitives.MaxSlot.Add(1))
	require.Equal(t, primitives.Slot(3), primitives.Slot(97).DivSlot(32))
	require.Equal(t, primitives.Slot(0), primitives.Slot(97).DivSlot(0))
	require.Equal(t, primitives.Slot(1), primitives.Slot(97).ModSlot(32))
	require.Equal(t, primitives.FarFutureEpoch, primitives.Epoch(1<<63).Mul(4))
	require.Equal(t, primitives.Epoch(12), primitives.Epoch(3).Mul(4))
}

func TestWei(t *testing.T) {
	w := primitives.GweiToWei(32)
	require.Equal(t, "32000000000", (*uint256.Int)(w).Dec())
	require.Equal(t, primitives.Gwei(32), primitives.WeiToGwei(w))
	require.Equal(t, primitives.Gwei(0), primitives.WeiToGwei(nil))
	require.Equal(t, primitives.Gwei(0), primitives.WeiToGwei(primitives.Uint64ToWei(999_999_999)))
	require.True(t, (*uint256.Int)(primitives.ZeroWei()).IsZero())
}

package hash_test

import (
	"encoding/hex"
	"testing"

	"github.com/YoutacRandS-VA/teku/crypto/hash"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	// sha256("") from FIPS 180-2.
	want, err := hex.DecodeString("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")
	require.NoError(t, err)
	got := hash.Hash([]byte{})
	require.Equal(t, want, got[:])
}

func TestHashTwo_MatchesConcatenation(t *testing.T) {
	a := [32]byte{1, 2, 3}
	b := [32]byte{4, 5, 6}
	buf := append(a[:], b[:]...)
	require.Equal(t, hash.Hash(buf), hash.HashTwo(a, b))
}

func TestCustomSHA256Hasher_Reusable(t *testing.T) {
	hasher := hash.CustomSHA256Hasher()
	for _, in := range [][]byte{[]byte("a"), []byte("bb"), []byte("a")} {
		require.Equal(t, hash.Hash(in), hasher(in))
	}
}

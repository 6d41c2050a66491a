package random_test

import (
	"testing"

	fieldparams "github.com/YoutacRandS-VA/teku/config/fieldparams"
	"github.com/YoutacRandS-VA/teku/crypto/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicRandomness(t *testing.T) {
	seed := int64(123)
	r1 := random.DeterministicRandomness(seed)
	r2 := random.DeterministicRandomness(seed)
	assert.Equal(t, r1, r2, "Same seed should produce same output")

	r3 := random.DeterministicRandomness(seed + 1)
	assert.NotEqual(t, r1, r3, "Different seeds should produce different outputs")
}

func TestGetRandFieldElement(t *testing.T) {
	for _, seed := range []int64{-1, 0, 123} {
		e := random.GetRandFieldElement(seed)
		r := random.DeterministicRandomness(seed)
		assert.Equal(t, byte(0), e[0])
		assert.Equal(t, r[1:], e[1:])
	}
}

func TestGetRandBlob(t *testing.T) {
	seed := int64(123)
	blob := random.GetRandBlob(seed)
	require.Len(t, blob, fieldparams.BlobLength)
	assert.Equal(t, blob, random.GetRandBlob(seed), "Same seed should produce same blob")
	assert.NotEqual(t, blob, random.GetRandBlob(seed+1), "Different seeds should produce different blobs")

	for i := 0; i < len(blob); i += 32 {
		want := random.GetRandFieldElement(seed + int64(i))
		require.Equal(t, want[:], blob[i:i+32], "field element at byte %d", i)
	}
}

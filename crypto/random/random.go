// Package random derives reproducible pseudo random values from integer
// seeds for tests and local networks.
package random

import (
	"encoding/binary"

	fieldparams "github.com/YoutacRandS-VA/teku/config/fieldparams"
	"github.com/YoutacRandS-VA/teku/crypto/hash"
)

// DeterministicRandomness creates a deterministic 32 byte array from a seed
func DeterministicRandomness(seed int64) [32]byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(seed)) // lint:ignore uintcast -- Only the bit pattern matters.
	return hash.Hash(b[:])
}

// GetRandFieldElement returns a serialized big-endian field element. The top
// byte is cleared so the value stays below the BLS12-381 scalar modulus.
func GetRandFieldElement(seed int64) [32]byte {
	r := DeterministicRandomness(seed)
	r[0] = 0
	return r
}

// GetRandBlob returns a random blob using the passed seed as entropy
func GetRandBlob(seed int64) []byte {
	blob := make([]byte, fieldparams.BlobLength)
	for i := 0; i < len(blob); i += 32 {
		e := GetRandFieldElement(seed + int64(i))
		copy(blob[i:i+32], e[:])
	}
	return blob
}

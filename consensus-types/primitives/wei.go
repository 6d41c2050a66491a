package primitives

import (
	"github.com/holiman/uint256"
	fssz "github.com/prysmaticlabs/fastssz"
)

var _ fssz.HashRoot = (Gwei)(0)

// Gwei is a denomination of 1e9 Wei, the unit of consensus layer balances.
type Gwei uint64

// HashTreeRoot returns the SSZ hash tree root of the amount.
func (g Gwei) HashTreeRoot() ([32]byte, error) {
	return fssz.HashWithDefaultHasher(g)
}

// HashTreeRootWith appends the SSZ uint64 representation of the amount to the given hasher.
func (g Gwei) HashTreeRootWith(hh *fssz.Hasher) error {
	hh.PutUint64(uint64(g))
	return nil
}

// Wei is the smallest denomination of ether, as reported by the execution layer.
type Wei *uint256.Int

var gweiPerWei = uint256.NewInt(1_000_000_000)

// ZeroWei returns a new zero Wei amount.
func ZeroWei() Wei {
	return uint256.NewInt(0)
}

// Uint64ToWei converts a plain amount of Wei.
func Uint64ToWei(v uint64) Wei {
	return uint256.NewInt(v)
}

// WeiToGwei converts Wei to Gwei, rounding down. A nil amount is zero and
// amounts above the Gwei range saturate.
func WeiToGwei(w Wei) Gwei {
	if w == nil {
		return 0
	}
	q := new(uint256.Int).Div((*uint256.Int)(w), gweiPerWei)
	if !q.IsUint64() {
		return Gwei(^uint64(0))
	}
	return Gwei(q.Uint64())
}

// GweiToWei converts Gwei to Wei.
func GweiToWei(g Gwei) Wei {
	return new(uint256.Int).Mul(uint256.NewInt(uint64(g)), gweiPerWei)
}

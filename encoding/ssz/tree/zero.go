package tree

import (
	"github.com/pkg/errors"
)

// MaxDepth is the deepest zero subtree kept in the cache.
const MaxDepth = 64

var zeroNodes [MaxDepth + 1]Node

func init() {
	zeroNodes[0] = &Leaf{}
	for i := 1; i <= MaxDepth; i++ {
		b := NewBranch(zeroNodes[i-1], zeroNodes[i-1])
		b.Root()
		zeroNodes[i] = b
	}
}

// Zero returns the all-zero subtree of the given depth. The same node is
// handed out for every caller, so default-valued subtrees of equal depth are
// shared regardless of the schema that asked for them.
func Zero(depth uint64) Node {
	if depth > MaxDepth {
		// lint:nopanic -- depths above 64 cannot be addressed by a uint64 generalized index.
		panic(errors.Errorf("zero subtree depth %d exceeds maximum %d", depth, MaxDepth))
	}
	zeroNodeHits.Inc()
	return zeroNodes[depth]
}

// ZeroHash returns the root of the all-zero subtree of the given depth.
func ZeroHash(depth uint64) [32]byte {
	return Zero(depth).Root()
}

// IsZero reports whether n is the cached zero subtree of the given depth.
func IsZero(n Node, depth uint64) bool {
	return depth <= MaxDepth && n == zeroNodes[depth]
}

package tree

import (
	"math/bits"
)

// GIndex is a generalized index: the position of a node in a binary tree
// where the root is 1 and the children of node i are 2i and 2i+1.
type GIndex uint64

// RootGIndex addresses the root of a tree.
const RootGIndex GIndex = 1

// ToGIndex returns the generalized index of the leaf at position index in a
// perfect tree of the given depth.
func ToGIndex(depth uint64, index uint64) GIndex {
	return GIndex(uint64(1)<<depth | index)
}

// Depth returns the distance between the node and the root.
func (g GIndex) Depth() uint64 {
	if g == 0 {
		return 0
	}
	return uint64(bits.Len64(uint64(g)) - 1)
}

// LeftChild returns the generalized index of the left child.
func (g GIndex) LeftChild() GIndex { return g << 1 }

// RightChild returns the generalized index of the right child.
func (g GIndex) RightChild() GIndex { return g<<1 | 1 }

// Parent returns the generalized index of the parent node.
func (g GIndex) Parent() GIndex { return g >> 1 }

// IsLeft reports whether the node is the left child of its parent.
func (g GIndex) IsLeft() bool { return g&1 == 0 }

// Sibling returns the generalized index of the other child of the parent.
func (g GIndex) Sibling() GIndex { return g ^ 1 }

// IndexAtDepth returns the position of the node among all nodes of its depth.
func (g GIndex) IndexAtDepth() uint64 {
	return uint64(g) ^ (uint64(1) << g.Depth())
}

// Concat appends the paths of the given generalized indices, each relative to
// the subtree addressed by the previous one.
func Concat(indices ...GIndex) GIndex {
	result := RootGIndex
	for _, g := range indices {
		d := g.Depth()
		result = result<<d | GIndex(g.IndexAtDepth())
	}
	return result
}

// Depth returns ceil(log2(count)), the depth of the smallest perfect tree
// with at least count leaves.
func Depth(count uint64) uint64 {
	if count <= 1 {
		return 0
	}
	return uint64(bits.Len64(count - 1))
}

// NextPowerOfTwo returns the smallest power of two greater or equal to v.
func NextPowerOfTwo(v uint64) uint64 {
	if v <= 1 {
		return 1
	}
	return uint64(1) << Depth(v)
}

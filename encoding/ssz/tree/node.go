// Package tree implements the persistent binary merkle tree that backs every
// SSZ value. Nodes are immutable once constructed; updates allocate only the
// branches between the touched leaves and the root and share every other
// subtree with the original tree.
package tree

import (
	"sync/atomic"

	"github.com/YoutacRandS-VA/teku/crypto/hash"
)

// BytesPerChunk is the number of bytes held by a single leaf.
const BytesPerChunk = 32

// Node is a node of the backing tree. Implementations are immutable and safe
// for concurrent readers.
type Node interface {
	// Root returns the hash tree root of the subtree rooted at this node.
	Root() [32]byte
	// IsLeaf reports whether the node holds a chunk rather than two children.
	IsLeaf() bool
	// Left returns the left child, nil for leaves.
	Left() Node
	// Right returns the right child, nil for leaves.
	Right() Node
}

// Leaf holds a single 32 byte chunk. For packed sequences of basic values the
// chunk carries several consecutive elements.
type Leaf struct {
	chunk [BytesPerChunk]byte
}

// NewLeaf wraps a chunk in a leaf node.
func NewLeaf(chunk [BytesPerChunk]byte) *Leaf {
	return &Leaf{chunk: chunk}
}

// NewLeafFromBytes builds a leaf from at most 32 bytes, zero padded on the
// right. Input beyond 32 bytes is ignored.
func NewLeafFromBytes(b []byte) *Leaf {
	l := &Leaf{}
	copy(l.chunk[:], b)
	return l
}

// Root of a leaf is its chunk.
func (l *Leaf) Root() [32]byte {
	return l.chunk
}

// Chunk returns a copy of the leaf contents.
func (l *Leaf) Chunk() [BytesPerChunk]byte {
	return l.chunk
}

func (*Leaf) IsLeaf() bool { return true }
func (*Leaf) Left() Node   { return nil }
func (*Leaf) Right() Node  { return nil }

// Branch is an inner node with two children. Its root is memoized on first
// access.
type Branch struct {
	left  Node
	right Node
	root  atomic.Pointer[[32]byte]
}

// NewBranch creates an inner node. Both children must be non-nil.
func NewBranch(left, right Node) *Branch {
	return &Branch{left: left, right: right}
}

// Root returns H(left.Root() || right.Root()). Concurrent first calls may both
// compute the digest; the result is deterministic so whichever store wins is
// correct, and readers only ever observe a fully written value.
func (b *Branch) Root() [32]byte {
	if r := b.root.Load(); r != nil {
		return *r
	}
	r := hash.HashTwo(b.left.Root(), b.right.Root())
	hashComputations.Inc()
	b.root.CompareAndSwap(nil, &r)
	return r
}

func (*Branch) IsLeaf() bool  { return false }
func (b *Branch) Left() Node  { return b.left }
func (b *Branch) Right() Node { return b.right }

// hashed reports whether the root of b has already been computed.
func (b *Branch) hashed() bool {
	return b.root.Load() != nil
}

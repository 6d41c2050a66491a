package tree

import (
	"encoding/binary"

	"github.com/YoutacRandS-VA/teku/crypto/hash"
)

// Proof returns the merkle branch for the node at g, ordered from the
// sibling of that node up to the child of the root.
func Proof(root Node, g GIndex) ([][32]byte, error) {
	if g == 0 {
		return nil, ErrInvalidGIndex
	}
	depth := g.Depth()
	branch := make([][32]byte, depth)
	n := root
	for i := int(depth) - 1; i >= 0; i-- {
		if n.IsLeaf() {
			return nil, ErrNavigateLeaf
		}
		if (g>>uint(i))&1 == 1 {
			branch[i] = n.Left().Root()
			n = n.Right()
		} else {
			branch[i] = n.Right().Root()
			n = n.Left()
		}
	}
	return branch, nil
}

// VerifyProof checks that leaf sits at g below root given the branch
// produced by Proof.
//
// Spec pseudocode definition:
//
//	def is_valid_merkle_branch(leaf: Bytes32, branch: Sequence[Bytes32], depth: uint64, index: uint64, root: Root) -> bool:
//	    value = leaf
//	    for i in range(depth):
//	        if index // (2**i) % 2:
//	            value = hash(branch[i] + value)
//	        else:
//	            value = hash(value + branch[i])
//	    return value == root
func VerifyProof(root [32]byte, leaf [32]byte, g GIndex, branch [][32]byte) bool {
	if g == 0 || uint64(len(branch)) != g.Depth() {
		return false
	}
	value := leaf
	for i, sibling := range branch {
		if (g>>uint(i))&1 == 1 {
			value = hash.HashTwo(sibling, value)
		} else {
			value = hash.HashTwo(value, sibling)
		}
	}
	return value == root
}

// MixInLength returns the branch combining a content subtree with its length,
// as used by variable length sequences.
func MixInLength(content Node, length uint64) Node {
	return NewBranch(content, lengthLeaf(length))
}

// MixInLengthRoot computes the mixed in root without allocating nodes.
func MixInLengthRoot(root [32]byte, length uint64) [32]byte {
	return hash.HashTwo(root, lengthLeaf(length).chunk)
}

func lengthLeaf(length uint64) *Leaf {
	l := &Leaf{}
	binary.LittleEndian.PutUint64(l.chunk[:8], length)
	return l
}

// LengthFromNode decodes the length stored in a mixed in length leaf.
func LengthFromNode(n Node) uint64 {
	r := n.Root()
	return binary.LittleEndian.Uint64(r[:8])
}

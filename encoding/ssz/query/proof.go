package query

import (
	"github.com/YoutacRandS-VA/teku/encoding/ssz/schema"
	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/pkg/errors"
)

// Proof is a merkle proof of the node a path addresses.
type Proof struct {
	GIndex tree.GIndex
	Leaf   [32]byte
	Branch [][32]byte
}

// Verify checks the proof against a value root.
func (p *Proof) Verify(root [32]byte) bool {
	return tree.VerifyProof(root, p.Leaf, p.GIndex, p.Branch)
}

// Prove resolves rawPath against v's schema and returns the proof of the
// addressed node.
func Prove(v schema.Value, rawPath string) (*Proof, error) {
	path, err := ParsePath(rawPath)
	if err != nil {
		return nil, err
	}
	g, _, err := GeneralizedIndex(v.Schema(), path)
	if err != nil {
		return nil, err
	}
	n, err := tree.GetNode(v.BackingNode(), g)
	if err != nil {
		return nil, errors.Wrapf(err, "could not resolve %s", path)
	}
	branch, err := tree.Proof(v.BackingNode(), g)
	if err != nil {
		return nil, err
	}
	return &Proof{GIndex: g, Leaf: n.Root(), Branch: branch}, nil
}

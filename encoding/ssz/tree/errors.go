package tree

import "github.com/pkg/errors"

var (
	// ErrInvalidGIndex is returned for generalized indices that do not address a node of the tree.
	ErrInvalidGIndex = errors.New("invalid generalized index")
	// ErrNavigateLeaf is returned when a path continues below a leaf.
	ErrNavigateLeaf = errors.New("cannot navigate below a leaf node")
	// ErrTooManyChunks is returned when more leaves are supplied than a tree of the given depth holds.
	ErrTooManyChunks = errors.New("number of chunks exceeds tree capacity")
)

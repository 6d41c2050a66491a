package tree

import (
	"slices"

	"github.com/pkg/errors"
)

// GetNode returns the node addressed by g within the tree rooted at root.
func GetNode(root Node, g GIndex) (Node, error) {
	if g == 0 {
		return nil, ErrInvalidGIndex
	}
	n := root
	for i := int(g.Depth()) - 1; i >= 0; i-- {
		if n.IsLeaf() {
			return nil, errors.Wrapf(ErrNavigateLeaf, "gindex %d", g)
		}
		if (g>>uint(i))&1 == 1 {
			n = n.Right()
		} else {
			n = n.Left()
		}
	}
	return n, nil
}

// Update returns a tree equal to root except that the node at g is replaced
// with child. Only the branches on the path from g to the root are
// allocated. When child is already the node at g, root itself is returned.
func Update(root Node, g GIndex, child Node) (Node, error) {
	if g == 0 {
		return nil, ErrInvalidGIndex
	}
	if child == nil {
		return nil, errors.New("nil replacement node")
	}
	return setAt(root, uint64(g), g.Depth(), child)
}

func setAt(n Node, g uint64, depth uint64, child Node) (Node, error) {
	if depth == 0 {
		return child, nil
	}
	if n.IsLeaf() {
		return nil, ErrNavigateLeaf
	}
	left, right := n.Left(), n.Right()
	if (g>>(depth-1))&1 == 0 {
		nl, err := setAt(left, g, depth-1, child)
		if err != nil {
			return nil, err
		}
		if nl == left {
			return n, nil
		}
		return NewBranch(nl, right), nil
	}
	nr, err := setAt(right, g, depth-1, child)
	if err != nil {
		return nil, err
	}
	if nr == right {
		return n, nil
	}
	return NewBranch(left, nr), nil
}

type leafUpdate struct {
	index uint64
	node  Node
}

// UpdateMany replaces several leaves of the perfect subtree of the given depth
// at once. Updates are grouped by common ancestor, so every branch shared by
// two or more updated leaves is rebuilt exactly once. Keys are leaf positions
// in [0, 2^depth).
func UpdateMany(root Node, depth uint64, updates map[uint64]Node) (Node, error) {
	if len(updates) == 0 {
		return root, nil
	}
	if depth > MaxDepth {
		return nil, errors.Wrapf(ErrInvalidGIndex, "depth %d", depth)
	}
	sorted := make([]leafUpdate, 0, len(updates))
	for idx, n := range updates {
		if depth < MaxDepth && idx >= uint64(1)<<depth {
			return nil, errors.Wrapf(ErrInvalidGIndex, "leaf %d outside tree of depth %d", idx, depth)
		}
		if n == nil {
			return nil, errors.Errorf("nil replacement node for leaf %d", idx)
		}
		sorted = append(sorted, leafUpdate{index: idx, node: n})
	}
	slices.SortFunc(sorted, func(a, b leafUpdate) int {
		switch {
		case a.index < b.index:
			return -1
		case a.index > b.index:
			return 1
		}
		return 0
	})
	batchUpdates.Observe(float64(len(sorted)))
	return setMany(root, depth, 0, sorted)
}

// setMany applies sorted updates to the subtree n of the given depth whose
// first leaf has position base.
func setMany(n Node, depth uint64, base uint64, updates []leafUpdate) (Node, error) {
	if len(updates) == 0 {
		return n, nil
	}
	if depth == 0 {
		return updates[0].node, nil
	}
	if n.IsLeaf() {
		return nil, ErrNavigateLeaf
	}
	mid := base + uint64(1)<<(depth-1)
	split, _ := slices.BinarySearchFunc(updates, mid, func(u leafUpdate, target uint64) int {
		switch {
		case u.index < target:
			return -1
		case u.index > target:
			return 1
		}
		return 0
	})
	left, right := n.Left(), n.Right()
	nl, err := setMany(left, depth-1, base, updates[:split])
	if err != nil {
		return nil, err
	}
	nr, err := setMany(right, depth-1, mid, updates[split:])
	if err != nil {
		return nil, err
	}
	if nl == left && nr == right {
		return n, nil
	}
	return NewBranch(nl, nr), nil
}

// FromChunks builds a perfect tree of the given depth whose first leaves are
// nodes. Missing leaves are filled with shared zero subtrees.
func FromChunks(nodes []Node, depth uint64) (Node, error) {
	if depth < MaxDepth && uint64(len(nodes)) > uint64(1)<<depth {
		return nil, errors.Wrapf(ErrTooManyChunks, "%d chunks for depth %d", len(nodes), depth)
	}
	return fromChunks(nodes, depth), nil
}

func fromChunks(nodes []Node, depth uint64) Node {
	if len(nodes) == 0 {
		return Zero(depth)
	}
	if depth == 0 {
		return nodes[0]
	}
	half := uint64(1) << (depth - 1)
	if uint64(len(nodes)) <= half {
		return NewBranch(fromChunks(nodes, depth-1), Zero(depth-1))
	}
	return NewBranch(fromChunks(nodes[:half], depth-1), fromChunks(nodes[half:], depth-1))
}

// Leaves returns the first count leaves of the perfect subtree of the given
// depth, in order.
func Leaves(root Node, depth uint64, count uint64) ([]Node, error) {
	out := make([]Node, 0, count)
	var walk func(n Node, d uint64) error
	walk = func(n Node, d uint64) error {
		if uint64(len(out)) == count {
			return nil
		}
		if d == 0 {
			out = append(out, n)
			return nil
		}
		if n.IsLeaf() {
			return ErrNavigateLeaf
		}
		if err := walk(n.Left(), d-1); err != nil {
			return err
		}
		return walk(n.Right(), d-1)
	}
	if err := walk(root, depth); err != nil {
		return nil, err
	}
	return out, nil
}

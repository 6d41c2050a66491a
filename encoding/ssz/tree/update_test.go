package tree_test

import (
	"testing"

	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/stretchr/testify/require"
)

func leaves(n int) []tree.Node {
	out := make([]tree.Node, n)
	for i := range out {
		out[i] = tree.NewLeafFromBytes([]byte{byte(i + 1)})
	}
	return out
}

func TestGIndex(t *testing.T) {
	g := tree.ToGIndex(4, 12)
	require.Equal(t, tree.GIndex(28), g)
	require.Equal(t, uint64(4), g.Depth())
	require.Equal(t, uint64(12), g.IndexAtDepth())
	require.True(t, g.IsLeft())
	require.Equal(t, tree.GIndex(29), g.Sibling())
	require.Equal(t, tree.GIndex(14), g.Parent())
	require.Equal(t, tree.GIndex(56), g.LeftChild())
	require.Equal(t, tree.GIndex(57), g.RightChild())

	// field 3 of a 4 field container, then element 1 of a depth 1 subtree.
	require.Equal(t, tree.GIndex(15), tree.Concat(tree.GIndex(7), tree.GIndex(3)))
	require.Equal(t, tree.GIndex(7), tree.Concat(tree.RootGIndex, tree.GIndex(7)))
}

func TestDepth(t *testing.T) {
	tests := []struct {
		count uint64
		want  uint64
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {13, 4}, {16, 4}, {17, 5},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tree.Depth(tt.count), "count %d", tt.count)
	}
	require.Equal(t, uint64(16), tree.NextPowerOfTwo(13))
	require.Equal(t, uint64(1), tree.NextPowerOfTwo(0))
}

func TestFromChunks_PadsWithZeroSubtrees(t *testing.T) {
	root, err := tree.FromChunks(leaves(3), 3)
	require.NoError(t, err)
	// the right half holds no chunks and must be the cached zero subtree.
	require.True(t, tree.IsZero(root.Right(), 2))

	n, err := tree.GetNode(root, tree.ToGIndex(3, 2))
	require.NoError(t, err)
	require.Equal(t, [32]byte{3}, n.Root())

	_, err = tree.FromChunks(leaves(5), 2)
	require.ErrorIs(t, err, tree.ErrTooManyChunks)
}

func TestGetNode_Errors(t *testing.T) {
	root, err := tree.FromChunks(leaves(2), 1)
	require.NoError(t, err)
	_, err = tree.GetNode(root, 0)
	require.ErrorIs(t, err, tree.ErrInvalidGIndex)
	_, err = tree.GetNode(root, tree.ToGIndex(3, 0))
	require.ErrorIs(t, err, tree.ErrNavigateLeaf)
}

func TestUpdate_SharesSiblings(t *testing.T) {
	root, err := tree.FromChunks(leaves(8), 3)
	require.NoError(t, err)

	replacement := tree.NewLeafFromBytes([]byte{99})
	updated, err := tree.Update(root, tree.ToGIndex(3, 5), replacement)
	require.NoError(t, err)
	require.NotEqual(t, root.Root(), updated.Root())

	// left half untouched.
	require.Same(t, root.Left(), updated.Left())
	// inside the right half only the path to leaf 5 was rebuilt.
	require.Same(t, root.Right().Right(), updated.Right().Right())
	require.Same(t, root.Right().Left().Left(), updated.Right().Left().Left())

	got, err := tree.GetNode(updated, tree.ToGIndex(3, 5))
	require.NoError(t, err)
	require.Same(t, replacement, got)
}

func TestUpdate_SameChildIsNoop(t *testing.T) {
	root, err := tree.FromChunks(leaves(4), 2)
	require.NoError(t, err)
	existing, err := tree.GetNode(root, tree.ToGIndex(2, 1))
	require.NoError(t, err)

	updated, err := tree.Update(root, tree.ToGIndex(2, 1), existing)
	require.NoError(t, err)
	require.Same(t, root, updated)
}

func TestUpdateMany_EqualsSequentialUpdates(t *testing.T) {
	root, err := tree.FromChunks(leaves(13), 4)
	require.NoError(t, err)

	updates := map[uint64]tree.Node{
		0:  tree.NewLeafFromBytes([]byte{0xa0}),
		1:  tree.NewLeafFromBytes([]byte{0xa1}),
		12: tree.NewLeafFromBytes([]byte{0xac}),
		15: tree.NewLeafFromBytes([]byte{0xaf}),
	}
	batched, err := tree.UpdateMany(root, 4, updates)
	require.NoError(t, err)

	sequential := root
	for idx, n := range updates {
		sequential, err = tree.Update(sequential, tree.ToGIndex(4, idx), n)
		require.NoError(t, err)
	}
	require.Equal(t, sequential.Root(), batched.Root())

	// leaves 0 and 1 share their parent: rebuilt once and both visible.
	parent, err := tree.GetNode(batched, tree.ToGIndex(3, 0))
	require.NoError(t, err)
	require.Same(t, updates[0], parent.Left())
	require.Same(t, updates[1], parent.Right())

	// untouched quarter is shared.
	require.Same(t, root.Left().Right(), batched.Left().Right())
}

func TestUpdateMany_Errors(t *testing.T) {
	root, err := tree.FromChunks(leaves(2), 1)
	require.NoError(t, err)

	same, err := tree.UpdateMany(root, 1, nil)
	require.NoError(t, err)
	require.Same(t, root, same)

	_, err = tree.UpdateMany(root, 1, map[uint64]tree.Node{2: tree.Zero(0)})
	require.ErrorIs(t, err, tree.ErrInvalidGIndex)
	_, err = tree.UpdateMany(root, 1, map[uint64]tree.Node{0: nil})
	require.Error(t, err)
}

func TestLeaves(t *testing.T) {
	in := leaves(5)
	root, err := tree.FromChunks(in, 10)
	require.NoError(t, err)
	got, err := tree.Leaves(root, 10, 5)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i := range in {
		require.Same(t, in[i], got[i])
	}
}

package tree_test

import (
	"testing"

	"github.com/YoutacRandS-VA/teku/encoding/ssz/tree"
	"github.com/stretchr/testify/require"
)

func TestMerkleize_MatchesTree(t *testing.T) {
	tests := []struct {
		name   string
		chunks int
		limit  uint64
	}{
		{name: "empty", chunks: 0, limit: 4},
		{name: "single", chunks: 1, limit: 1},
		{name: "odd", chunks: 3, limit: 3},
		{name: "sparse", chunks: 5, limit: 1024},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes := leaves(tt.chunks)
			chunks := make([][32]byte, len(nodes))
			for i, n := range nodes {
				chunks[i] = n.Root()
			}
			root, err := tree.Merkleize(chunks, tt.limit)
			require.NoError(t, err)
			built, err := tree.FromChunks(nodes, tree.Depth(tt.limit))
			require.NoError(t, err)
			require.Equal(t, built.Root(), root)
		})
	}
}

func TestMerkleize_OverLimit(t *testing.T) {
	_, err := tree.Merkleize(make([][32]byte, 3), 2)
	require.ErrorIs(t, err, tree.ErrTooManyChunks)
}

func TestPackByChunk(t *testing.T) {
	chunks, err := tree.PackByChunk([][]byte{{1, 0, 0, 0, 0, 0, 0, 0}, {2, 0, 0, 0, 0, 0, 0, 0}})
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	require.Equal(t, byte(1), chunks[0][0])
	require.Equal(t, byte(2), chunks[0][8])

	empty, err := tree.PackByChunk(nil)
	require.NoError(t, err)
	require.Equal(t, [][32]byte{{}}, empty)
}

func TestUint64Root(t *testing.T) {
	r := tree.Uint64Root(1024000)
	require.Equal(t, [32]byte{0x00, 0xa0, 0x0f}, r)
}

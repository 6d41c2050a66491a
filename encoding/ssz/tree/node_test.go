package tree

import (
	"sync"
	"testing"

	"github.com/YoutacRandS-VA/teku/crypto/hash"
	"github.com/stretchr/testify/require"
)

func TestLeaf_RootIsPaddedChunk(t *testing.T) {
	l := NewLeafFromBytes([]byte{1, 2, 3})
	want := [32]byte{1, 2, 3}
	require.Equal(t, want, l.Root())
	require.True(t, l.IsLeaf())
	require.Nil(t, l.Left())
	require.Nil(t, l.Right())
}

func TestBranch_RootHashesChildren(t *testing.T) {
	a := NewLeaf([32]byte{1})
	b := NewLeaf([32]byte{2})
	br := NewBranch(a, b)
	require.False(t, br.hashed())
	require.Equal(t, hash.HashTwo(a.Root(), b.Root()), br.Root())
	require.True(t, br.hashed())
}

func TestBranch_ConcurrentRootIsConsistent(t *testing.T) {
	br := NewBranch(NewLeaf([32]byte{7}), Zero(0))
	want := hash.HashTwo([32]byte{7}, [32]byte{})

	var wg sync.WaitGroup
	roots := make([][32]byte, 16)
	for i := range roots {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			roots[i] = br.Root()
		}(i)
	}
	wg.Wait()
	for _, r := range roots {
		require.Equal(t, want, r)
	}
}

func TestZero_SharedAndPrehashed(t *testing.T) {
	for d := uint64(1); d <= 8; d++ {
		z := Zero(d)
		require.Same(t, z, Zero(d))
		require.True(t, z.(*Branch).hashed())
		require.Equal(t, hash.HashTwo(ZeroHash(d-1), ZeroHash(d-1)), z.Root())
		require.True(t, IsZero(z, d))
	}
	require.False(t, IsZero(NewBranch(Zero(0), Zero(0)), 1))
}

func TestZero_DepthTooLargePanics(t *testing.T) {
	require.Panics(t, func() { Zero(MaxDepth + 1) })
}

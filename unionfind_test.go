package egraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnionFind_MakeAllocatesDenseIDs(t *testing.T) {
	u := NewUnionFind()
	for i := 0; i < 5; i++ {
		assert.Equal(t, ClassID(i), u.Make())
	}
	assert.Equal(t, 5, u.Len())
}

func TestUnionFind_FindIsIdentityOnFreshIDs(t *testing.T) {
	u := NewUnionFind()
	a := u.Make()
	b := u.Make()
	assert.Equal(t, a, u.Find(a))
	assert.Equal(t, b, u.Find(b))
}

func TestUnionFind_UnionTieBreaksLowerID(t *testing.T) {
	u := NewUnionFind()
	a := u.Make() // 0
	b := u.Make() // 1

	// Equal ranks: the lower id must survive.
	kept := u.Union(b, a)
	assert.Equal(t, a, kept)
	assert.Equal(t, a, u.Find(b))
}

func TestUnionFind_UnionByRank(t *testing.T) {
	u := NewUnionFind()
	a := u.Make() // 0
	b := u.Make() // 1
	c := u.Make() // 2

	// {0,1} rooted at 0 with rank 1.
	require.Equal(t, a, u.Union(a, b))
	// Rank 1 beats rank 0 regardless of id order.
	kept := u.Union(c, a)
	assert.Equal(t, a, kept)
	assert.Equal(t, a, u.Find(c))
}

func TestUnionFind_UnionAlreadyJoined(t *testing.T) {
	u := NewUnionFind()
	a := u.Make()
	b := u.Make()
	u.Union(a, b)
	assert.Equal(t, u.Find(a), u.Union(a, b), "re-union is a no-op")
}

func TestUnionFind_Same(t *testing.T) {
	u := NewUnionFind()
	a := u.Make()
	b := u.Make()
	c := u.Make()
	u.Union(a, b)
	assert.True(t, u.Same(a, b))
	assert.False(t, u.Same(a, c))
}

func TestUnionFind_PathCompression(t *testing.T) {
	u := NewUnionFind()
	ids := make([]ClassID, 8)
	for i := range ids {
		ids[i] = u.Make()
	}
	// Chain the classes together, then verify every id resolves to the
	// same root and the parent pointers have collapsed.
	for i := 1; i < len(ids); i++ {
		u.Union(ids[0], ids[i])
	}
	root := u.Find(ids[0])
	for _, id := range ids {
		require.Equal(t, root, u.Find(id))
	}
	for _, id := range ids {
		assert.Equal(t, root, u.parents[id], "path should be fully compressed")
	}
}

func TestUnionFind_FindUnknownIDPanics(t *testing.T) {
	u := NewUnionFind()
	u.Make()
	assert.Panics(t, func() { u.Find(42) })
	assert.Panics(t, func() { u.Find(-1) })
}

func TestUnionFind_PartitionIsOrderIndependent(t *testing.T) {
	// Any order of a fixed set of unions must induce the same partition.
	// Representatives may differ (rank depends on order); the equivalence
	// relation must not.
	build := func(pairs [][2]ClassID) *UnionFind {
		u := NewUnionFind()
		for i := 0; i < 6; i++ {
			u.Make()
		}
		for _, p := range pairs {
			u.Union(p[0], p[1])
		}
		return u
	}

	u1 := build([][2]ClassID{{0, 1}, {2, 3}, {1, 2}})
	u2 := build([][2]ClassID{{2, 3}, {1, 2}, {0, 1}})
	for i := ClassID(0); i < 6; i++ {
		for j := ClassID(0); j < 6; j++ {
			assert.Equal(t, u1.Same(i, j), u2.Same(i, j), "ids %d, %d", i, j)
		}
	}
}

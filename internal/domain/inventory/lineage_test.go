package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildChain creates splits A -> (B, C) and C -> (D, E)
func buildChain(t *testing.T) (a, b, c, d, e uuid.UUID, idx *LineageIndex) {
	t.Helper()
	a, b, c = uuid.New(), uuid.New(), uuid.New()
	d, e = uuid.New(), uuid.New()

	first, err := NewLotSplit(a, b, c, decimal.NewFromInt(6), "order")
	require.NoError(t, err)
	second, err := NewLotSplit(c, d, e, decimal.NewFromInt(1), "order")
	require.NoError(t, err)

	idx = NewLineageIndex([]LotSplit{*first, *second})
	return
}

func TestLineageIndex_Lookups(t *testing.T) {
	a, b, c, d, _, idx := buildChain(t)

	t.Run("split of a source lot", func(t *testing.T) {
		split, ok := idx.SplitOf(a)
		require.True(t, ok)
		assert.Equal(t, a, split.SourceLotID)

		_, ok = idx.SplitOf(b)
		assert.False(t, ok)
	})

	t.Run("origin of a child lot", func(t *testing.T) {
		split, ok := idx.OriginOf(d)
		require.True(t, ok)
		assert.Equal(t, c, split.SourceLotID)

		_, ok = idx.OriginOf(a)
		assert.False(t, ok)
	})
}

func TestLineageIndex_AncestorChain(t *testing.T) {
	a, b, c, d, e, idx := buildChain(t)

	t.Run("grandchild walks to the root", func(t *testing.T) {
		chain := idx.AncestorChain(d)
		require.Len(t, chain, 2)
		assert.Equal(t, c, chain[0].SourceLotID)
		assert.Equal(t, a, chain[1].SourceLotID)
		assert.Equal(t, a, idx.RootOf(d))
		assert.Equal(t, a, idx.RootOf(e))
	})

	t.Run("direct child has one ancestor", func(t *testing.T) {
		chain := idx.AncestorChain(b)
		require.Len(t, chain, 1)
		assert.Equal(t, a, chain[0].SourceLotID)
	})

	t.Run("root lot has no ancestors and is its own root", func(t *testing.T) {
		assert.Empty(t, idx.AncestorChain(a))
		assert.Equal(t, a, idx.RootOf(a))
	})

	t.Run("unknown lot is its own root", func(t *testing.T) {
		stranger := uuid.New()
		assert.Empty(t, idx.AncestorChain(stranger))
		assert.Equal(t, stranger, idx.RootOf(stranger))
	})
}

func TestLineageIndex_Descendants(t *testing.T) {
	a, _, c, _, _, idx := buildChain(t)

	t.Run("root sees the whole tree breadth-first", func(t *testing.T) {
		subtree := idx.Descendants(a)
		require.Len(t, subtree, 2)
		assert.Equal(t, a, subtree[0].SourceLotID)
		assert.Equal(t, c, subtree[1].SourceLotID)
	})

	t.Run("mid lot sees only its own subtree", func(t *testing.T) {
		subtree := idx.Descendants(c)
		require.Len(t, subtree, 1)
		assert.Equal(t, c, subtree[0].SourceLotID)
	})

	t.Run("leaf has no descendants", func(t *testing.T) {
		assert.Empty(t, idx.Descendants(uuid.New()))
	})
}

func TestLineageIndex_CorruptChainTerminates(t *testing.T) {
	// x and y reference each other as parents; the walk must stop.
	x, y := uuid.New(), uuid.New()
	first, err := NewLotSplit(x, y, uuid.New(), decimal.NewFromInt(1), "order")
	require.NoError(t, err)
	second, err := NewLotSplit(y, x, uuid.New(), decimal.NewFromInt(1), "order")
	require.NoError(t, err)
	idx := NewLineageIndex([]LotSplit{*first, *second})

	chain := idx.AncestorChain(x)
	assert.LessOrEqual(t, len(chain), 2)
	assert.NotEmpty(t, idx.LotIDs())
}

func TestLineageIndex_LotIDs(t *testing.T) {
	_, _, _, _, _, idx := buildChain(t)
	// Five distinct lots: c appears in both splits but is counted once.
	assert.Len(t, idx.LotIDs(), 5)
}

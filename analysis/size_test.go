package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numhack/egraph"
	"github.com/numhack/egraph/analysis"
	"github.com/numhack/egraph/term"
)

func TestMinSize_LeafAndApplication(t *testing.T) {
	g := egraph.New(egraph.WithAnalysis(analysis.MinSize{}))
	id, err := g.AddTerm(term.MustParse("(f (g a) b)"))
	require.NoError(t, err)

	v, ok := g.AnalysisValue(analysis.MinSizeName, id)
	require.True(t, ok)
	assert.Equal(t, int64(4), v, "f + g + a + b")
}

func TestMinSize_JoinTakesMinimum(t *testing.T) {
	// Equating (g a) with the leaf b shrinks its class to size 1 and the
	// enclosing term to 3.
	g := egraph.New(egraph.WithAnalysis(analysis.MinSize{}))
	f, err := g.AddTerm(term.MustParse("(f (g a) b)"))
	require.NoError(t, err)
	ga, err := g.AddTerm(term.MustParse("(g a)"))
	require.NoError(t, err)
	b, err := g.AddTerm(term.MustParse("b"))
	require.NoError(t, err)

	g.Merge(ga, b)
	require.NoError(t, g.Rebuild())
	require.NoError(t, g.Validate())

	v, ok := g.AnalysisValue(analysis.MinSizeName, ga)
	require.True(t, ok)
	assert.Equal(t, int64(1), v)

	v, ok = g.AnalysisValue(analysis.MinSizeName, f)
	require.True(t, ok)
	assert.Equal(t, int64(3), v, "parent shrinks with its child")
}

func TestMinSize_LazySkipsAddAndRepair(t *testing.T) {
	g := egraph.New(egraph.WithAnalysis(analysis.MinSize{LazyEval: true}))
	id, err := g.AddTerm(term.MustParse("(f a)"))
	require.NoError(t, err)

	_, ok := g.AnalysisValue(analysis.MinSizeName, id)
	assert.False(t, ok, "lazy analysis must not populate on Add")

	v, ok := g.ComputeAnalysis(analysis.MinSizeName, id)
	require.True(t, ok, "on-demand computation must succeed")
	assert.Equal(t, int64(2), v)

	v2, ok := g.AnalysisValue(analysis.MinSizeName, id)
	require.True(t, ok, "computed value must be cached")
	assert.Equal(t, v, v2)
}

func TestMinSize_LazyCycleBoundByLeaf(t *testing.T) {
	g := egraph.New(egraph.WithAnalysis(analysis.MinSize{LazyEval: true}))
	a, err := g.AddTerm(term.MustParse("(f a)"))
	require.NoError(t, err)
	leaf, err := g.AddTerm(term.MustParse("a"))
	require.NoError(t, err)

	g.Merge(a, leaf)
	require.NoError(t, g.Rebuild())

	// The merged class still holds the leaf, so a value exists.
	v, ok := g.ComputeAnalysis(analysis.MinSizeName, a)
	require.True(t, ok)
	assert.Equal(t, int64(1), v, "leaf member bounds the cycle")
}

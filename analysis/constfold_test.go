package analysis_test

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numhack/egraph"
	"github.com/numhack/egraph/analysis"
	"github.com/numhack/egraph/term"
)

func constGraph(t *testing.T, src string) (*egraph.EGraph, egraph.ClassID) {
	t.Helper()
	g := egraph.New(egraph.WithAnalysis(analysis.ConstFold{}))
	id, err := g.AddTerm(term.MustParse(src))
	require.NoError(t, err)
	require.NoError(t, g.Rebuild())
	require.NoError(t, g.Validate())
	return g, id
}

func constValue(t *testing.T, g *egraph.EGraph, id egraph.ClassID) string {
	t.Helper()
	v, ok := g.AnalysisValue(analysis.ConstFoldName, id)
	require.True(t, ok, "class c%d should fold to a constant", g.Find(id))
	return v.(*apd.Decimal).String()
}

func TestConstFold_LiteralLeaf(t *testing.T) {
	g, id := constGraph(t, "7")
	assert.Equal(t, "7", constValue(t, g, id))
}

func TestConstFold_Addition(t *testing.T) {
	g, id := constGraph(t, "(+ 1 2)")
	assert.Equal(t, "3", constValue(t, g, id))
}

func TestConstFold_NestedFoldsToLiteralClass(t *testing.T) {
	// (1+2)+3 must end up congruent to the literal 6.
	g, id := constGraph(t, "(+ (+ 1 2) 3)")
	assert.Equal(t, "6", constValue(t, g, id))

	six, err := g.AddTerm(term.MustParse("6"))
	require.NoError(t, err)
	assert.Equal(t, g.Find(six), g.Find(id), "folded class must share the literal's class")
}

func TestConstFold_CollapsesIntermediateSum(t *testing.T) {
	// Inserting (1+2) then the literal 3 hits the same class.
	g, id := constGraph(t, "(+ 1 2)")
	three, err := g.AddTerm(term.MustParse("3"))
	require.NoError(t, err)
	assert.Equal(t, g.Find(three), g.Find(id))
}

func TestConstFold_Operators(t *testing.T) {
	cases := map[string]string{
		"(- 5 2)":     "3",
		"(* 4 2)":     "8",
		"(/ 9 3)":     "3",
		"(* 1.5 4)":   "6",
		"(- 2 5)":     "-3",
		"(+ 0.1 0.2)": "0.3",
	}
	for src, want := range cases {
		g, id := constGraph(t, src)
		assert.Equal(t, want, constValue(t, g, id), "source %s", src)
	}
}

func TestConstFold_DivisionByZeroStaysUnknown(t *testing.T) {
	g := egraph.New(egraph.WithAnalysis(analysis.ConstFold{}))
	id, err := g.AddTerm(term.MustParse("(/ 1 0)"))
	require.NoError(t, err)
	require.NoError(t, g.Rebuild())

	_, ok := g.AnalysisValue(analysis.ConstFoldName, id)
	assert.False(t, ok, "division by zero must not bind a constant")
}

func TestConstFold_SymbolStaysUnknown(t *testing.T) {
	g := egraph.New(egraph.WithAnalysis(analysis.ConstFold{}))
	id, err := g.AddTerm(term.MustParse("(+ x 1)"))
	require.NoError(t, err)
	require.NoError(t, g.Rebuild())

	_, ok := g.AnalysisValue(analysis.ConstFoldName, id)
	assert.False(t, ok, "open terms must not fold")
}

func TestConstFold_MergePropagatesConstant(t *testing.T) {
	// Asserting x = 2 lets (+ x 1) fold to 3 during rebuild.
	g := egraph.New(egraph.WithAnalysis(analysis.ConstFold{}))
	sum, err := g.AddTerm(term.MustParse("(+ x 1)"))
	require.NoError(t, err)
	x, err := g.AddTerm(term.MustParse("x"))
	require.NoError(t, err)
	two, err := g.AddTerm(term.MustParse("2"))
	require.NoError(t, err)

	g.Merge(x, two)
	require.NoError(t, g.Rebuild())
	require.NoError(t, g.Validate())

	assert.Equal(t, "3", constValue(t, g, sum))

	three, err := g.AddTerm(term.MustParse("3"))
	require.NoError(t, err)
	assert.Equal(t, g.Find(three), g.Find(sum), "folded sum must collapse onto its literal")
}

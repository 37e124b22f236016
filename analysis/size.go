package analysis

import (
	"github.com/numhack/egraph"
)

// MinSizeName is MinSize's registry name.
const MinSizeName = "minsize"

// MinSize tracks the size of the smallest term each class can represent:
// 1 for a leaf, 1 plus the children's minimum sizes for an application.
// The lattice value is int64 and Join takes the minimum, so the value
// only shrinks as the graph learns cheaper representations - the usual
// input to cost-based extraction.
//
// LazyEval controls population: eager by default, set it to defer
// computation to egraph.ComputeAnalysis.
type MinSize struct {
	LazyEval bool
}

// Name implements egraph.Analysis.
func (MinSize) Name() string { return MinSizeName }

// Lazy implements egraph.Analysis.
func (m MinSize) Lazy() bool { return m.LazyEval }

// Make implements egraph.Analysis. Requires every child to be bound.
func (MinSize) Make(g *egraph.EGraph, n egraph.Node) (any, bool) {
	size := int64(1)
	for _, c := range n.Children {
		v, ok := g.AnalysisValue(MinSizeName, c)
		if !ok {
			return nil, false
		}
		size += v.(int64)
	}
	return size, true
}

// Join implements egraph.Analysis: minimum of the two sizes.
func (MinSize) Join(a, b any) (any, bool) {
	x, y := a.(int64), b.(int64)
	if y < x {
		return y, true
	}
	return x, false
}

// Modify implements egraph.Analysis. MinSize is purely observational.
func (MinSize) Modify(*egraph.EGraph, egraph.ClassID) {}

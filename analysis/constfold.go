package analysis

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/numhack/egraph"
)

// ConstFoldName is ConstFold's registry name.
const ConstFoldName = "constfold"

// apdCtx is the arithmetic context for folding. 34 digits matches
// IEEE 754 decimal128; plenty for term rewriting workloads, finite so
// division cannot produce unbounded coefficients.
var apdCtx = apd.BaseContext.WithPrecision(34)

// ConstFold is the constant-folding analysis. The lattice value is
// *apd.Decimal: bound means "every term in this class evaluates to this
// constant", unbound means unknown.
//
// Make lifts + - * / over bound children; Modify interns the folded
// literal and merges the class onto it, so after Rebuild every constant
// class is congruent to its literal's class.
type ConstFold struct{}

// Name implements egraph.Analysis.
func (ConstFold) Name() string { return ConstFoldName }

// Lazy implements egraph.Analysis. ConstFold is eager: folding must
// react to every insertion for Modify's collapses to fire.
func (ConstFold) Lazy() bool { return false }

// Make implements egraph.Analysis. Literal leaves evaluate to themselves;
// binary arithmetic applications evaluate when both children are bound.
// Division by zero and arithmetic errors leave the value unknown.
func (ConstFold) Make(g *egraph.EGraph, n egraph.Node) (any, bool) {
	if n.Lit != nil {
		var d apd.Decimal
		d.Set(n.Lit)
		return &d, true
	}
	if n.IsLeaf() || len(n.Children) != 2 {
		return nil, false
	}

	av, ok := g.AnalysisValue(ConstFoldName, n.Children[0])
	if !ok {
		return nil, false
	}
	bv, ok := g.AnalysisValue(ConstFoldName, n.Children[1])
	if !ok {
		return nil, false
	}
	x, y := av.(*apd.Decimal), bv.(*apd.Decimal)

	var out apd.Decimal
	var err error
	switch n.Op {
	case "+":
		_, err = apdCtx.Add(&out, x, y)
	case "-":
		_, err = apdCtx.Sub(&out, x, y)
	case "*":
		_, err = apdCtx.Mul(&out, x, y)
	case "/":
		if y.IsZero() {
			return nil, false
		}
		_, err = apdCtx.Quo(&out, x, y)
	default:
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	var red apd.Decimal
	red.Reduce(&out)
	return &red, true
}

// Join implements egraph.Analysis. Two bound constants on the same class
// must agree; if they do the value is unchanged. A disagreement means an
// unsound merge upstream - the first value is kept, since no lattice
// order exists between conflicting constants.
func (ConstFold) Join(a, b any) (any, bool) {
	x, y := a.(*apd.Decimal), b.(*apd.Decimal)
	if x.Cmp(y) == 0 {
		return a, false
	}
	return a, false
}

// Modify implements egraph.Analysis. A class with a known constant is
// merged onto the literal's class, interning the literal if needed. The
// merge dirties the class; the next Rebuild propagates the collapse.
func (ConstFold) Modify(g *egraph.EGraph, id egraph.ClassID) {
	v, ok := g.AnalysisValue(ConstFoldName, id)
	if !ok {
		return
	}
	lit := g.Add(egraph.Literal(v.(*apd.Decimal)))
	g.Merge(id, lit)
}

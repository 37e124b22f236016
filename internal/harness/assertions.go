package harness

import (
	"fmt"
	"slices"

	"github.com/cockroachdb/apd/v3"

	"github.com/numhack/egraph"
	"github.com/numhack/egraph/analysis"
)

// evalAssertion checks one assertion against the rebuilt graph.
// Returns "" on success, a failure message otherwise.
func evalAssertion(g *egraph.EGraph, ids map[string]egraph.ClassID, a Assertion) string {
	switch a.Type {
	case "same_class":
		return evalSameClass(g, ids, a, true)
	case "distinct_class":
		return evalSameClass(g, ids, a, false)
	case "class_count":
		if got := g.NumClasses(); got != a.Count {
			return fmt.Sprintf("class_count: expected %d live classes, got %d", a.Count, got)
		}
	case "const_value":
		return evalConstValue(g, ids, a)
	case "reachable_from_root":
		return evalReachable(g, ids, a)
	}
	return ""
}

// evalSameClass verifies every listed term shares (or does not share) a
// class with the first one.
func evalSameClass(g *egraph.EGraph, ids map[string]egraph.ClassID, a Assertion, same bool) string {
	if len(a.Terms) < 2 {
		return fmt.Sprintf("%s: needs at least two terms", a.Type)
	}
	first := g.Find(ids[a.Terms[0]])
	for _, name := range a.Terms[1:] {
		got := g.Find(ids[name])
		if same && got != first {
			return fmt.Sprintf("same_class: %q is c%d, %q is c%d", a.Terms[0], first, name, got)
		}
		if !same && got == first {
			return fmt.Sprintf("distinct_class: %q and %q share c%d", a.Terms[0], name, first)
		}
	}
	return ""
}

// evalConstValue verifies the constfold analysis bound the expected
// constant to the term's class.
func evalConstValue(g *egraph.EGraph, ids map[string]egraph.ClassID, a Assertion) string {
	v, ok := g.AnalysisValue(analysis.ConstFoldName, ids[a.Term])
	if !ok {
		return fmt.Sprintf("const_value: %q has no constant bound", a.Term)
	}
	want, _, err := apd.NewFromString(a.Value)
	if err != nil {
		return fmt.Sprintf("const_value: bad expected value %q: %v", a.Value, err)
	}
	got := v.(*apd.Decimal)
	if got.Cmp(want) != 0 {
		return fmt.Sprintf("const_value: %q folded to %s, expected %s", a.Term, got, want)
	}
	return ""
}

// evalReachable verifies every listed term's class is reachable from the
// root.
func evalReachable(g *egraph.EGraph, ids map[string]egraph.ClassID, a Assertion) string {
	root := g.Root()
	if root == egraph.NoClass {
		return "reachable_from_root: graph has no root"
	}
	reach := g.Reachable(root)
	for _, name := range a.Terms {
		if !slices.Contains(reach, g.Find(ids[name])) {
			return fmt.Sprintf("reachable_from_root: %q (c%d) not reachable", name, g.Find(ids[name]))
		}
	}
	return ""
}

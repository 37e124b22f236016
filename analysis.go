package egraph

// Analysis attaches a semi-lattice value to every class and refines it as
// the graph grows. Values are bound per class, joined on merge, and
// propagated upward through parents during Rebuild.
//
// Implementations must keep Join commutative, associative, and idempotent,
// and the lattice must have finite ascending chains - Rebuild's
// termination depends on it (the repair quota backstops violations).
type Analysis interface {
	// Name identifies the analysis. Must be unique within a graph and
	// stable: it is the lookup key for AnalysisValue.
	Name() string

	// Make computes the value for a freshly interned node from the values
	// already bound to its children. ok is false when not enough is known
	// (an unbound child, an operator the analysis does not understand).
	Make(g *EGraph, n Node) (v any, ok bool)

	// Join combines the current value a with an incoming value b.
	// changed reports whether the result differs from a; repair uses it to
	// decide whether to keep propagating upward.
	Join(a, b any) (v any, changed bool)

	// Modify is a side-effecting hook. Add invokes it on every fresh class
	// after Make, whether or not Make bound a value; repair invokes it on
	// classes that hold a bound value. It may call Add and Merge on the graph (constant folding
	// collapses a class onto its literal this way) but must not call
	// Rebuild - Rebuild owns the dirty worklist and is not reentrant.
	Modify(g *EGraph, id ClassID)

	// Lazy analyses are skipped on Add and in the eager make branch of
	// repair; their values are computed on demand via ComputeAnalysis.
	Lazy() bool
}

// RegisterAnalysis appends a to the graph's analysis registry.
// Must be called before the first Add; analyses are evaluated in
// registration order everywhere they run.
func (g *EGraph) RegisterAnalysis(a Analysis) {
	for _, existing := range g.analyses {
		if existing.Name() == a.Name() {
			panic(newInvariantError("analysis %q registered twice", a.Name()))
		}
	}
	g.analyses = append(g.analyses, a)
	g.values = append(g.values, make(map[ClassID]any))
}

// analysisIndex resolves an analysis name to its registry slot.
func (g *EGraph) analysisIndex(name string) (int, bool) {
	for i, a := range g.analyses {
		if a.Name() == name {
			return i, true
		}
	}
	return 0, false
}

// AnalysisValue returns the value bound to id's class by the named
// analysis. The id is canonicalized first. ok is false when the analysis
// is unknown or the class has no binding yet.
func (g *EGraph) AnalysisValue(name string, id ClassID) (any, bool) {
	i, ok := g.analysisIndex(name)
	if !ok {
		return nil, false
	}
	v, ok := g.values[i][g.uf.Find(id)]
	return v, ok
}

// ComputeAnalysis returns the named analysis value for id, computing and
// caching it on demand. This is the query path for lazy analyses: the
// class's reachable children are visited bottom-up, each class folding
// Make over its member nodes with Join. Cyclic classes with no leaf
// escape stay unbound.
func (g *EGraph) ComputeAnalysis(name string, id ClassID) (any, bool) {
	i, ok := g.analysisIndex(name)
	if !ok {
		return nil, false
	}
	a := g.analyses[i]
	visiting := make(map[ClassID]bool)

	var visit func(c ClassID) (any, bool)
	visit = func(c ClassID) (any, bool) {
		c = g.uf.Find(c)
		if v, ok := g.values[i][c]; ok {
			return v, true
		}
		if visiting[c] {
			// Cycle with no value yet: nothing finite to report.
			return nil, false
		}
		visiting[c] = true
		defer delete(visiting, c)

		var acc any
		bound := false
		for _, n := range g.classes[c].nodes.slice() {
			for _, k := range n.Children {
				visit(k) // bind children first; Make reads them
			}
			v, ok := a.Make(g, n)
			if !ok {
				continue
			}
			if !bound {
				acc, bound = v, true
				continue
			}
			acc, _ = a.Join(acc, v)
		}
		if bound {
			g.values[i][c] = acc
		}
		return acc, bound
	}
	return visit(id)
}

package egraph

import (
	"log/slog"
)

// DefaultMaxRepairSteps is the default limit on repair calls per Rebuild.
// This prevents a misbehaving analysis lattice from hanging the rebuild
// loop.
const DefaultMaxRepairSteps = 100000

// eclass holds the mutable per-class state: member nodes and the parent
// back-index. Keyed by the class's union-find root; merged-away roots are
// deleted.
type eclass struct {
	nodes   *nodeSet
	parents *parentSet
}

func newEClass() *eclass {
	return &eclass{nodes: newNodeSet(), parents: newParentSet()}
}

// EGraph is the equality-saturation core. See the package documentation
// for the architecture.
//
// Thread-safety model:
//   - All methods require exclusive access; there is no internal locking
//   - Analysis Modify hooks may reenter Add and Merge, never Rebuild
//
// INVARIANTS (after Rebuild):
//   - Every node stored in class memory is canonical and hashconsed to
//     its class's root
//   - Structurally equal canonical nodes share a class (congruence)
//   - Parent pairs are consistent with class memory
//   - The dirty worklist is empty
type EGraph struct {
	uf       *UnionFind
	hashcons map[string]ClassID
	classes  map[ClassID]*eclass
	dirty    []ClassID
	root     ClassID

	analyses []Analysis
	values   []map[ClassID]any // parallel to analyses, registration order

	maxRepairSteps int
	logger         *slog.Logger
	id             string
	rebuilding     bool
}

// Option configures a graph at construction.
type Option func(*EGraph)

// WithMaxRepairSteps sets the repair-step quota per Rebuild.
//
// Default: 100000 (DefaultMaxRepairSteps)
// Use a small value to test quota enforcement.
func WithMaxRepairSteps(n int) Option {
	return func(g *EGraph) {
		g.maxRepairSteps = n
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *EGraph) {
		g.logger = l
	}
}

// WithGraphIDGenerator overrides the graph identity generator.
// Tests use a fixed generator for deterministic log output.
func WithGraphIDGenerator(gen GraphIDGenerator) Option {
	return func(g *EGraph) {
		g.id = gen.Generate()
	}
}

// WithAnalysis registers analyses at construction, in argument order.
func WithAnalysis(as ...Analysis) Option {
	return func(g *EGraph) {
		for _, a := range as {
			g.RegisterAnalysis(a)
		}
	}
}

// New creates an empty graph.
func New(opts ...Option) *EGraph {
	g := &EGraph{
		uf:             NewUnionFind(),
		hashcons:       make(map[string]ClassID),
		classes:        make(map[ClassID]*eclass),
		root:           NoClass,
		maxRepairSteps: DefaultMaxRepairSteps,
		logger:         slog.Default(),
		id:             UUIDv7Generator{}.Generate(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Root returns the distinguished root class, canonicalized, or NoClass
// for an empty graph. The root is the first term inserted via AddTerm
// unless SetRoot overrode it.
func (g *EGraph) Root() ClassID {
	if g.root == NoClass {
		return NoClass
	}
	return g.uf.Find(g.root)
}

// SetRoot marks id's class as the distinguished root.
func (g *EGraph) SetRoot(id ClassID) {
	g.root = g.uf.Find(id)
}

// NumClasses returns the number of live classes.
func (g *EGraph) NumClasses() int {
	return len(g.classes)
}

// NumNodes returns the number of interned canonical nodes.
func (g *EGraph) NumNodes() int {
	return len(g.hashcons)
}

// ID returns the graph's identity token.
func (g *EGraph) ID() string {
	return g.id
}

// Find returns the canonical id of id's class. Constant amortized,
// idempotent, and safe on any id the graph ever returned.
func (g *EGraph) Find(id ClassID) ClassID {
	return g.uf.Find(id)
}

// Canonicalize returns n with every child replaced by its root.
func (g *EGraph) Canonicalize(n Node) Node {
	return Canonicalize(g.uf, n)
}

// Add interns n and returns its class id.
//
// The node's children must already be class ids of this graph. Adding a
// node that is already interned is idempotent: it returns the existing
// class and mutates nothing. A fresh node allocates a class, indexes the
// node as a parent of each child, and runs the eager analyses
// (Make then Modify, in registration order).
//
// Modify hooks may merge the fresh class away, so the returned id is
// re-canonicalized.
func (g *EGraph) Add(n Node) ClassID {
	n = g.Canonicalize(n)
	if id, ok := g.hashcons[n.Key()]; ok {
		return g.uf.Find(id)
	}

	id := g.uf.Make()
	g.classes[id] = newEClass()
	for _, k := range n.Children {
		g.classes[g.uf.Find(k)].parents.add(n, id)
	}
	g.hashcons[n.Key()] = id
	g.classes[id].nodes.add(n)

	for i, a := range g.analyses {
		if a.Lazy() {
			continue
		}
		// An earlier analysis's Modify may have merged id away; values
		// must bind to the live root.
		cid := g.uf.Find(id)
		if v, ok := a.Make(g, n); ok {
			g.values[i][cid] = v
		}
		a.Modify(g, cid)
	}

	g.logger.Debug("interned node",
		"node", n.String(),
		"class", int64(id),
		"graph", g.id)
	return g.uf.Find(id)
}

// Merge asserts that a and b denote the same value, unions their classes,
// and returns the surviving root.
//
// Merge splices class memory, the parent index, and analysis values onto
// the survivor and records it on the dirty worklist. It does NOT restore
// the congruence invariant: hashcons injectivity may be transiently
// broken until the next Rebuild. Merging already-equal classes is a
// no-op, not an error.
func (g *EGraph) Merge(a, b ClassID) ClassID {
	ra, rb := g.uf.Find(a), g.uf.Find(b)
	if ra == rb {
		return ra
	}

	kept := g.uf.Union(ra, rb)
	if kept != ra && kept != rb {
		// Union must return one of its arguments; anything else is
		// corrupted union-find state.
		panic(newInvariantError("union(%d, %d) returned foreign root %d", ra, rb, kept))
	}
	other := ra
	if kept == ra {
		other = rb
	}

	g.dirty = append(g.dirty, kept)

	keptClass := g.classes[kept]
	otherClass := g.classes[other]

	// Splice class memory, re-canonicalizing every node. Stale hashcons
	// entries keyed by pre-canonical forms are removed and the canonical
	// forms re-inserted under the survivor. Injectivity can break here;
	// Rebuild restores it.
	merged := newNodeSet()
	for _, n := range otherClass.nodes.slice() {
		delete(g.hashcons, n.Key())
		cn := g.Canonicalize(n)
		g.hashcons[cn.Key()] = kept
		merged.add(cn)
	}
	for _, n := range keptClass.nodes.slice() {
		delete(g.hashcons, n.Key())
		cn := g.Canonicalize(n)
		g.hashcons[cn.Key()] = kept
		merged.add(cn)
	}
	keptClass.nodes = merged

	if g.root == other {
		g.root = kept
	}

	keptClass.parents.addAll(otherClass.parents)
	delete(g.classes, other)

	for i, a := range g.analyses {
		vo, haveOther := g.values[i][other]
		vk, haveKept := g.values[i][kept]
		switch {
		case haveOther && haveKept:
			joined, _ := a.Join(vk, vo)
			g.values[i][kept] = joined
			delete(g.values[i], other)
		case haveOther:
			g.values[i][kept] = vo
			delete(g.values[i], other)
		}
	}

	g.logger.Debug("merged classes",
		"kept", int64(kept),
		"other", int64(other),
		"graph", g.id)
	return kept
}

// Package egraph implements an e-graph: a congruence-closed partition of
// terms into equivalence classes, the core data structure of equality
// saturation.
//
// ARCHITECTURE:
//
// Single-Writer Mutation Model:
// All mutation happens through one *EGraph value owned by a single
// goroutine. There is no internal locking; a sound multithreaded wrapper
// is a coarse external lock.
//
// State is split across five tightly coupled structures:
//  1. A union-find over class ids (canonicalization)
//  2. A hashcons from canonical e-node keys to class ids (deduplication)
//  3. Class memory: the member e-nodes of every live class
//  4. A parent index: for each class, the (parent e-node, owning class)
//     pairs that reference it
//  5. Per-analysis lattice values per class
//
// Mutation Flow:
//  1. Add canonicalizes a node, consults the hashcons, and either returns
//     the existing class or interns a fresh one, updating the parent index
//     and eager analyses.
//  2. Merge unions two classes, splices their memory, parents, and
//     analysis values onto the surviving root, and records the root on the
//     dirty worklist. Merge does NOT restore congruence.
//  3. Rebuild drains the dirty worklist: each dirty class has its parents
//     re-canonicalized and re-hashconsed, congruent parents merged upward
//     (which can dirty further classes), and analysis values re-propagated
//     until a fixpoint.
//
// Between a Merge and the next Rebuild the hashcons and class memory may
// be transiently inconsistent; queries that walk the graph must either
// tolerate that or call Rebuild first.
//
// CRITICAL PATTERNS:
//
// Deterministic Union Choice:
// Union picks the surviving root by rank, ties broken by the lower id.
// Any fixed set of merges therefore produces the same partition no matter
// the order, and test snapshots are reproducible.
//
// Registration-Order Analyses:
// Analyses are evaluated in registration order everywhere they run.
// Registration must happen before the first Add.
//
// Insertion-Ordered Sets:
// Class memory and parent sets preserve insertion order so that repair,
// dumps, and traversal are deterministic.
package egraph

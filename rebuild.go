package egraph

// Rebuild restores every graph invariant after a batch of merges by
// draining the dirty worklist.
//
// Each round deduplicates the worklist through Find and repairs every
// class in it. Repairs can dirty further classes (upward merging,
// analysis propagation), so the loop runs until the list stays empty.
// Termination is guaranteed while the union-find monotonically coarsens
// and analysis lattices have finite ascending chains; the repair quota
// converts a violated lattice contract into a REPAIR_QUOTA_EXCEEDED
// error.
//
// Rebuild is not reentrant: analysis Modify hooks must not call it.
func (g *EGraph) Rebuild() error {
	if g.rebuilding {
		panic(newInvariantError("Rebuild called reentrantly"))
	}
	g.rebuilding = true
	defer func() { g.rebuilding = false }()

	quota := newRepairQuota(g.maxRepairSteps)
	for len(g.dirty) > 0 {
		todo := g.dirty
		g.dirty = nil

		seen := make(map[ClassID]bool, len(todo))
		work := make([]ClassID, 0, len(todo))
		for _, id := range todo {
			r := g.uf.Find(id)
			if !seen[r] {
				seen[r] = true
				work = append(work, r)
			}
		}

		for _, id := range work {
			if err := quota.check(); err != nil {
				g.logger.Error("rebuild aborted: repair quota exceeded",
					"steps", quota.steps(),
					"limit", g.maxRepairSteps,
					"graph", g.id)
				return err
			}
			g.repair(id)
		}
	}

	if g.root != NoClass {
		g.root = g.uf.Find(g.root)
	}
	g.logger.Debug("rebuild complete",
		"steps", quota.steps(),
		"classes", len(g.classes),
		"graph", g.id)
	return nil
}

// recanonicalizeMembers rewrites every member node of a live class to its
// canonical form, retiring stale hashcons keys and re-inserting canonical
// ones under the class.
func (g *EGraph) recanonicalizeMembers(owner ClassID) {
	cls := g.classes[owner]
	fresh := newNodeSet()
	for _, n := range cls.nodes.slice() {
		delete(g.hashcons, n.Key())
		cn := g.Canonicalize(n)
		g.hashcons[cn.Key()] = owner
		fresh.add(cn)
	}
	cls.nodes = fresh
}

// repair re-establishes the invariants around one dirty class:
//
//  1. Re-hashcons parents: every parent's stale pre-canonical key is
//     deleted and its canonical form re-inserted, pointing at the
//     parent's canonical class. Overwrites are intended - two parents
//     collapsing to one canonical form is exactly congruence. Nothing
//     can query the hashcons between the delete and the re-insert;
//     repair never yields.
//  2. Deduplicate congruent parents: parents are canonicalized in
//     insertion order and any two that collapse to the same form have
//     their owning classes merged (upward merging, which may dirty more
//     classes).
//  3. Analysis pass: Modify fires for bound values, then each parent's
//     class joins in Make of the parent node; a changed value dirties
//     the parent class so propagation continues upward.
func (g *EGraph) repair(id ClassID) {
	id = g.uf.Find(id)
	cls := g.classes[id]

	// Step 1: re-hashcons parents. The parent pair may hold an older
	// spelling of the node than the owner's member copy (pairs are not
	// rewritten on owner merges), so both stale keys are removed: the
	// pair's directly, the member's by re-canonicalizing the owner's
	// whole member set once.
	owners := make(map[ClassID]bool)
	for _, pr := range cls.parents.slice() {
		delete(g.hashcons, pr.node.Key())
		cn := g.Canonicalize(pr.node)
		owner := g.uf.Find(pr.class)
		g.hashcons[cn.Key()] = owner
		if !owners[owner] {
			owners[owner] = true
			g.recanonicalizeMembers(owner)
		}
	}

	// Step 2: deduplicate congruent parents, merging upward.
	type repaired struct {
		node  Node
		class ClassID
	}
	order := make([]string, 0, cls.parents.size())
	byKey := make(map[string]repaired, cls.parents.size())
	for _, pr := range cls.parents.slice() {
		cn := g.Canonicalize(pr.node)
		k := cn.Key()
		if prev, ok := byKey[k]; ok {
			g.Merge(pr.class, prev.class)
		} else {
			order = append(order, k)
		}
		byKey[k] = repaired{node: cn, class: g.uf.Find(pr.class)}
	}
	// Upward merges may have folded this class into another root.
	id = g.uf.Find(id)
	fresh := newParentSet()
	for _, k := range order {
		r := byKey[k]
		fresh.add(r.node, g.uf.Find(r.class))
	}
	g.classes[id].parents = fresh

	// Step 3: analysis pass, in registration order.
	for i, a := range g.analyses {
		id = g.uf.Find(id)
		if _, bound := g.values[i][id]; bound {
			a.Modify(g, id)
			id = g.uf.Find(id)
		}
		for _, pr := range g.classes[id].parents.slice() {
			c := g.uf.Find(pr.class)
			cur, bound := g.values[i][c]
			if !bound {
				// Eager analyses bind fresh parents here; lazy ones wait
				// for ComputeAnalysis. Modify fires on the new binding
				// (its merges re-dirty through Merge itself).
				if !a.Lazy() {
					if v, ok := a.Make(g, pr.node); ok {
						g.values[i][c] = v
						a.Modify(g, c)
					}
				}
				continue
			}
			mv, ok := a.Make(g, pr.node)
			if !ok {
				continue
			}
			if joined, changed := a.Join(cur, mv); changed {
				g.values[i][c] = joined
				g.dirty = append(g.dirty, c)
			}
		}
	}
}

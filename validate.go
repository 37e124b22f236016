package egraph

import "fmt"

// Validate checks every post-rebuild invariant and returns an
// INVARIANT_VIOLATION GraphError describing the first failure:
//
//   - the dirty worklist is empty
//   - class keys are union-find roots
//   - every member node is canonical and hashconsed to its class
//   - every child of a member indexes the member as a parent
//   - every hashcons entry points at a live class holding the node
//
// Between Merge and Rebuild violations are expected; call Validate only
// on a rebuilt graph. Tests call it after every Rebuild, and the CLI
// verifies evaluated graphs with it.
func (g *EGraph) Validate() error {
	violation := func(format string, args ...any) error {
		return &GraphError{
			Code:    ErrCodeInvariantViolation,
			Message: fmt.Sprintf(format, args...),
			Class:   NoClass,
		}
	}

	if len(g.dirty) > 0 {
		return violation("dirty worklist holds %d entries", len(g.dirty))
	}

	for id, cls := range g.classes {
		if g.uf.Find(id) != id {
			return violation("class key c%d is not a root", id)
		}
		for _, n := range cls.nodes.slice() {
			cn := g.Canonicalize(n)
			if cn.Key() != n.Key() {
				return violation("member %s of c%d is not canonical", n, id)
			}
			mapped, ok := g.hashcons[n.Key()]
			if !ok {
				return violation("member %s of c%d is not hashconsed", n, id)
			}
			if g.uf.Find(mapped) != id {
				return violation("hashcons maps %s to c%d, not its class c%d", n, g.uf.Find(mapped), id)
			}
			for _, k := range n.Children {
				pk := g.uf.Find(k)
				found := false
				for _, pr := range g.classes[pk].parents.slice() {
					if g.Canonicalize(pr.node).Key() == n.Key() && g.uf.Find(pr.class) == id {
						found = true
						break
					}
				}
				if !found {
					return violation("child c%d of %s does not index its parent class c%d", pk, n, id)
				}
			}
		}
	}

	for key, id := range g.hashcons {
		root := g.uf.Find(id)
		cls, ok := g.classes[root]
		if !ok {
			return violation("hashcons entry %s points at dead class c%d", key, id)
		}
		if _, ok := cls.nodes.byKey[key]; !ok {
			return violation("hashcons entry %s is missing from class memory", key)
		}
	}
	return nil
}

package egraph

// Reachable returns every class reachable from id's class by following
// the children of member nodes, in deterministic depth-first order
// starting with the class itself.
//
// The graph is logically cyclic - equality saturation can close loops
// like a = f(a) - so traversal carries a visited set. The implementation
// is iterative with an explicit stack: deep terms must not overflow the
// goroutine stack.
func (g *EGraph) Reachable(id ClassID) []ClassID {
	start := g.uf.Find(id)
	visited := make(map[ClassID]bool)
	order := make([]ClassID, 0, 8)
	stack := []ClassID{start}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		c = g.uf.Find(c)
		if visited[c] {
			continue
		}
		visited[c] = true
		order = append(order, c)

		// Push children in reverse so the traversal visits nodes and
		// their children in insertion order.
		nodes := g.classes[c].nodes.slice()
		for i := len(nodes) - 1; i >= 0; i-- {
			n := nodes[i]
			for j := len(n.Children) - 1; j >= 0; j-- {
				k := g.uf.Find(n.Children[j])
				if !visited[k] {
					stack = append(stack, k)
				}
			}
		}
	}
	return order
}

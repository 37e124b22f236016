package egraph

import "strconv"

// nodeSet is an insertion-ordered set of e-nodes keyed by their canonical
// encoding. Order matters: repair iterates parents in insertion order and
// dumps must be reproducible.
type nodeSet struct {
	order []string
	byKey map[string]Node
}

func newNodeSet() *nodeSet {
	return &nodeSet{byKey: make(map[string]Node)}
}

// add inserts n unless a structurally equal node is already present.
// Returns true if the set grew.
func (s *nodeSet) add(n Node) bool {
	k := n.Key()
	if _, ok := s.byKey[k]; ok {
		return false
	}
	s.order = append(s.order, k)
	s.byKey[k] = n
	return true
}

func (s *nodeSet) size() int {
	return len(s.byKey)
}

// slice returns the members in insertion order. The returned slice is a
// fresh copy: callers iterate it while the set may be mutated underneath.
func (s *nodeSet) slice() []Node {
	out := make([]Node, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.byKey[k])
	}
	return out
}

// parentPair couples a parent e-node with the class that owns it.
// Pair (n, c) is present in class k's parent set iff k appears as a child
// of n and n is a member of class c (modulo pending rebuild).
type parentPair struct {
	node  Node
	class ClassID
}

// parentSet is an insertion-ordered set of parent pairs. The key includes
// the owning class: between merge and rebuild the same node text can
// legitimately be owned by two classes, and repair needs to see both pairs
// to merge them upward.
type parentSet struct {
	order []string
	byKey map[string]parentPair
}

func newParentSet() *parentSet {
	return &parentSet{byKey: make(map[string]parentPair)}
}

func pairKey(n Node, c ClassID) string {
	return n.Key() + "@" + strconv.FormatInt(int64(c), 10)
}

// add inserts the pair (n, c) with set semantics.
func (s *parentSet) add(n Node, c ClassID) {
	k := pairKey(n, c)
	if _, ok := s.byKey[k]; ok {
		return
	}
	s.order = append(s.order, k)
	s.byKey[k] = parentPair{node: n, class: c}
}

// addAll splices every pair of o into s, preserving o's order.
func (s *parentSet) addAll(o *parentSet) {
	for _, k := range o.order {
		p := o.byKey[k]
		s.add(p.node, p.class)
	}
}

func (s *parentSet) size() int {
	return len(s.byKey)
}

// slice returns the pairs in insertion order as a fresh copy.
func (s *parentSet) slice() []parentPair {
	out := make([]parentPair, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.byKey[k])
	}
	return out
}

package egraph

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Node is an e-node: a term constructor applied to zero or more e-class
// ids. Two leaf shapes exist (symbols and numeric literals) plus
// applications with an ordered child sequence.
//
// Identity is the canonical encoding returned by Key: operator text plus
// literal text plus the ordered child ids. A node is canonical iff every
// child id is a union-find root.
type Node struct {
	// Op is the operator for applications or the symbol text for symbol
	// leaves. Empty for numeric literals.
	Op string

	// Lit is the value of a numeric literal leaf, nil otherwise.
	// Stored in reduced form so equal values encode identically.
	Lit *apd.Decimal

	// Children are the ordered child class ids. Empty for leaves.
	Children []ClassID
}

// Symbol builds a leaf node for a named symbol.
func Symbol(name string) Node {
	return Node{Op: name}
}

// Literal builds a leaf node for a numeric constant.
// The decimal is copied and reduced, so 6, 6.0, and 0.6e1 all produce the
// same node key.
func Literal(d *apd.Decimal) Node {
	var r apd.Decimal
	r.Reduce(d)
	return Node{Lit: &r}
}

// App builds an application node.
func App(op string, children ...ClassID) Node {
	return Node{Op: op, Children: children}
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Key returns the canonical encoding of n. The encoding is exact (not a
// lossy hash): two nodes are structurally equal iff their keys are equal.
// The hashcons and the class node sets are keyed by it.
func (n Node) Key() string {
	if n.Lit != nil {
		return "num:" + n.Lit.String()
	}
	if n.IsLeaf() {
		return "sym:" + n.Op
	}
	var b strings.Builder
	b.WriteString("app:")
	b.WriteString(n.Op)
	b.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatInt(int64(c), 10))
	}
	b.WriteByte(')')
	return b.String()
}

// Equal reports structural equality: same operator, same literal value,
// same ordered children.
func (n Node) Equal(o Node) bool {
	return n.Key() == o.Key()
}

// String renders n for logs and error messages.
func (n Node) String() string {
	if n.Lit != nil {
		return n.Lit.String()
	}
	if n.IsLeaf() {
		return n.Op
	}
	var b strings.Builder
	b.WriteString(n.Op)
	b.WriteByte('(')
	for i, c := range n.Children {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('c')
		b.WriteString(strconv.FormatInt(int64(c), 10))
	}
	b.WriteByte(')')
	return b.String()
}

// Canonicalize returns a copy of n with every child replaced by its
// union-find root. Leaves are returned unchanged. Pure with respect to
// the graph's other state.
func Canonicalize(u *UnionFind, n Node) Node {
	if n.IsLeaf() {
		return n
	}
	children := make([]ClassID, len(n.Children))
	for i, c := range n.Children {
		children[i] = u.Find(c)
	}
	return Node{Op: n.Op, Lit: n.Lit, Children: children}
}

// CanonicalizeInPlace rewrites n's children to their union-find roots.
func CanonicalizeInPlace(u *UnionFind, n *Node) {
	for i, c := range n.Children {
		n.Children[i] = u.Find(c)
	}
}

package egraph

import (
	"fmt"

	"github.com/numhack/egraph/term"
)

// AddTerm cleans t, interns every sub-term bottom-up, and returns the
// class of the outermost term. The walk is post-order (term.DFWalk), so
// child classes always exist before their parents are added; each
// sub-term is substituted by a term.Ref carrying its class id.
//
// The first AddTerm on an empty graph sets the distinguished root.
func (g *EGraph) AddTerm(t term.Term) (ClassID, error) {
	var walkErr error
	out := term.DFWalk(func(s term.Term) term.Term {
		if walkErr != nil {
			return s
		}
		switch v := s.(type) {
		case term.Sym:
			return term.Ref(g.Add(Symbol(string(v))))
		case term.Num:
			return term.Ref(g.Add(Literal(v.Dec)))
		case term.Ref:
			// Already translated by an outer pass.
			return v
		case term.Call:
			children := make([]ClassID, len(v.Args))
			for i, a := range v.Args {
				r, ok := a.(term.Ref)
				if !ok {
					walkErr = fmt.Errorf("egraph: argument %d of %q did not translate to a class", i, v.Head)
					return s
				}
				children[i] = ClassID(r)
			}
			return term.Ref(g.Add(App(v.Head, children...)))
		default:
			walkErr = fmt.Errorf("egraph: unsupported term %T", s)
			return s
		}
	}, term.Clean(t))
	if walkErr != nil {
		return NoClass, walkErr
	}

	r, ok := out.(term.Ref)
	if !ok {
		return NoClass, fmt.Errorf("egraph: walk produced %T, not a class", out)
	}
	id := g.uf.Find(ClassID(r))
	if g.root == NoClass {
		g.root = id
	}
	return id, nil
}

// NewFromTerm creates a graph seeded with t; t's class becomes the root.
func NewFromTerm(t term.Term, opts ...Option) (*EGraph, error) {
	g := New(opts...)
	if _, err := g.AddTerm(t); err != nil {
		return nil, err
	}
	return g, nil
}

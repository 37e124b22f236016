package testutil

import (
	"github.com/numhack/egraph"
	"github.com/numhack/egraph/term"
)

// MustAddTerm parses src and interns it into g, panicking on any error.
// Use only in tests with known-valid inputs.
func MustAddTerm(g *egraph.EGraph, src string) egraph.ClassID {
	id, err := g.AddTerm(term.MustParse(src))
	if err != nil {
		panic(err)
	}
	return id
}

package term

// DFWalk traverses t depth-first post-order, calling f on every sub-term
// and substituting f's result in place. Arguments are rewritten before
// their enclosing Call, so f always sees a Call whose arguments have
// already been replaced. Heads are atomic and never visited.
//
// The e-graph's term insertion is the canonical client: its f replaces
// each sub-term with a Ref carrying the interned class id, so every Call
// reaching f has only Ref arguments.
func DFWalk(f func(Term) Term, t Term) Term {
	switch v := t.(type) {
	case Call:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = DFWalk(f, a)
		}
		return f(Call{Head: v.Head, Args: args})
	default:
		return f(t)
	}
}

// Clean normalizes host quirks before insertion.
// Single-argument "group" wrappers are stripped recursively, so
// (group x) inserts the same class as x.
func Clean(t Term) Term {
	switch v := t.(type) {
	case Call:
		args := make([]Term, len(v.Args))
		for i, a := range v.Args {
			args[i] = Clean(a)
		}
		if v.Head == "group" && len(args) == 1 {
			return args[0]
		}
		return Call{Head: v.Head, Args: args}
	default:
		return t
	}
}

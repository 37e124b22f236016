package term

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Term is a sealed interface representing the host term surface.
// Only Sym, Num, Call, and Ref implement it.
type Term interface {
	term() // Sealed - only these types implement it
}

// Sym is a leaf symbol: a variable or named constant.
type Sym string

func (Sym) term() {}

// Num is a numeric leaf carrying an arbitrary-precision decimal.
// The decimal is treated as immutable once the Num is constructed.
type Num struct {
	Dec *apd.Decimal
}

func (Num) term() {}

// Call is an operator applied to ordered arguments.
// The head is plain text, not a sub-term: it is never walked into.
type Call struct {
	Head string
	Args []Term
}

func (Call) term() {}

// Ref is a substitution hole used by walkers: a sub-term that has already
// been translated to an e-class id. The e-graph's term insertion replaces
// each walked sub-term with a Ref carrying its class id.
type Ref int64

func (Ref) term() {}

// NewNum parses s into a numeric leaf.
// Accepts any decimal syntax apd accepts; rejects NaN and infinities.
func NewNum(s string) (Num, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Num{}, fmt.Errorf("term: invalid number %q: %w", s, err)
	}
	if d.Form != apd.Finite {
		return Num{}, fmt.Errorf("term: non-finite number %q", s)
	}
	return Num{Dec: d}, nil
}

// MustNum is like NewNum but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustNum(s string) Num {
	n, err := NewNum(s)
	if err != nil {
		panic(err)
	}
	return n
}

// Format renders a term back into s-expression syntax.
// Refs render as #<id> so partially translated terms stay readable.
func Format(t Term) string {
	var b strings.Builder
	format(&b, t)
	return b.String()
}

func format(b *strings.Builder, t Term) {
	switch v := t.(type) {
	case Sym:
		b.WriteString(string(v))
	case Num:
		b.WriteString(v.Dec.String())
	case Ref:
		fmt.Fprintf(b, "#%d", int64(v))
	case Call:
		b.WriteByte('(')
		b.WriteString(v.Head)
		for _, a := range v.Args {
			b.WriteByte(' ')
			format(b, a)
		}
		b.WriteByte(')')
	}
}

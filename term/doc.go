// Package term provides the host term surface consumed by the e-graph.
//
// Terms are immutable s-expression trees: symbol leaves, arbitrary-precision
// numeric leaves, and operator applications with ordered arguments. Operator
// heads are atomic - walkers never descend into them.
//
// Key design constraints:
//   - Term is a sealed interface; only Sym, Num, Call, and Ref implement it
//   - Numbers are apd decimals, never floats (float arithmetic breaks
//     deterministic interning)
//   - Symbol and head text is NFC normalized at the parse boundary so that
//     visually identical operators intern identically
package term

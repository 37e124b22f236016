// Package analysis provides concrete e-graph analyses.
//
// ConstFold propagates known constant values through arithmetic operators
// and collapses constant classes onto their literal. MinSize tracks the
// smallest term size each class can represent.
//
// Both honor the egraph.Analysis contract: commutative, associative,
// idempotent joins over lattices with finite ascending chains.
package analysis

// Package harness provides a conformance testing framework for the
// e-graph core.
//
// Scenarios are YAML files that describe a graph to build - terms to
// intern, equalities to merge, analyses to enable - plus assertions over
// the rebuilt partition. The harness executes the scenario against a
// fresh graph with deterministic identity tokens and compares the
// canonical dump against golden files.
//
// Execution flow:
//  1. Create a fresh graph with a fixed graph-id generator
//  2. Register the requested analyses (registration order = listed order)
//  3. Intern every term, recording name -> class id
//  4. Apply merges in declaration order
//  5. Rebuild and verify the graph invariants
//  6. Evaluate assertions and capture the canonical dump
//
// Determinism: given the same scenario, every run produces a
// byte-identical dump. Golden files under testdata/golden are the source
// of truth for expected partitions.
package harness

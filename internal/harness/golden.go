package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares the canonical dump
// against a golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Golden files are the source of truth for the expected partition: the
// dump format is byte-stable, so any drift in interning, merging, or
// repair shows up as a golden diff.
//
// Returns error if scenario execution fails; test failure (via goldie)
// occurs if the dump doesn't match the golden file or an assertion fails.
func RunWithGolden(t *testing.T, s *Scenario) error {
	t.Helper()

	result, err := Run(s)
	if err != nil {
		return err
	}
	for _, f := range result.Failures {
		t.Errorf("scenario %s: %s", s.Name, f)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, result.Snapshot)
	return nil
}

// AssertGolden compares an already-computed result against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	if result == nil {
		return fmt.Errorf("harness: nil result for scenario %s", scenarioName)
	}
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, result.Snapshot)
	return nil
}

package harness

import (
	"fmt"
	"log/slog"

	"github.com/numhack/egraph"
	"github.com/numhack/egraph/analysis"
	"github.com/numhack/egraph/internal/testutil"
	"github.com/numhack/egraph/term"
)

// Result captures the outcome of running a scenario.
type Result struct {
	// Failures lists assertion failures, empty on success.
	Failures []string

	// Snapshot is the canonical dump of the rebuilt graph.
	Snapshot []byte

	// Fingerprint is the content hash of the snapshot.
	Fingerprint string

	// IDs maps term names to their (canonical) class ids.
	IDs map[string]egraph.ClassID
}

// Run executes a scenario against a fresh graph and returns the result.
//
// Each scenario gets its own graph with a fixed identity token, so runs
// are deterministic and golden-comparable. Run returns an error for
// scenario problems (unparsable terms, unknown analyses, a failed
// rebuild); assertion failures land in Result.Failures instead.
func (s *Scenario) run(logger *slog.Logger) (*Result, error) {
	opts := []egraph.Option{
		egraph.WithGraphIDGenerator(testutil.NewFixedGraphIDGenerator(s.GraphID)),
	}
	if logger != nil {
		opts = append(opts, egraph.WithLogger(logger))
	}
	for _, name := range s.Analyses {
		a, err := analysis.ByName(name)
		if err != nil {
			return nil, fmt.Errorf("harness: unknown analysis %q", name)
		}
		opts = append(opts, egraph.WithAnalysis(a))
	}
	g := egraph.New(opts...)

	ids := make(map[string]egraph.ClassID, len(s.Terms))
	for _, td := range s.Terms {
		t, err := term.Parse(td.Expr)
		if err != nil {
			return nil, fmt.Errorf("harness: term %q: %w", td.Name, err)
		}
		id, err := g.AddTerm(t)
		if err != nil {
			return nil, fmt.Errorf("harness: term %q: %w", td.Name, err)
		}
		ids[td.Name] = id
	}

	for _, m := range s.Merges {
		g.Merge(ids[m[0]], ids[m[1]])
	}

	if err := g.Rebuild(); err != nil {
		return nil, fmt.Errorf("harness: rebuild: %w", err)
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("harness: invariants: %w", err)
	}

	res := &Result{
		Snapshot:    g.Dump(),
		Fingerprint: g.Fingerprint(),
		IDs:         ids,
	}
	for _, a := range s.Assertions {
		if msg := evalAssertion(g, ids, a); msg != "" {
			res.Failures = append(res.Failures, msg)
		}
	}
	return res, nil
}

// Run executes the scenario with the default logger.
func Run(s *Scenario) (*Result, error) {
	return s.run(nil)
}

package harness

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios build a graph from terms and merges, then assert on the
// rebuilt partition.
type Scenario struct {
	// Name uniquely identifies this scenario; it is also the golden file
	// name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// GraphID is an optional fixed graph token for deterministic logs.
	// If empty, the harness uses "test-graph-default".
	GraphID string `yaml:"graph_id,omitempty"`

	// Analyses lists analysis names to register, in order.
	// Supported: "constfold", "minsize", "minsize-lazy".
	Analyses []string `yaml:"analyses,omitempty"`

	// Terms are the expressions to intern, in order. Each gets a name
	// that merges and assertions refer back to.
	Terms []TermDef `yaml:"terms"`

	// Merges are pairs of term names to equate, applied in order after
	// all terms are interned.
	Merges [][]string `yaml:"merges,omitempty"`

	// Assertions validate the final partition.
	// Supported types: same_class, distinct_class, class_count,
	// const_value, reachable_from_root.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// TermDef names a single expression.
type TermDef struct {
	// Name is the handle merges and assertions use.
	Name string `yaml:"name"`

	// Expr is the s-expression source.
	Expr string `yaml:"expr"`
}

// Assertion validates one property of the final partition.
type Assertion struct {
	// Type selects the check.
	Type string `yaml:"type"`

	// Terms are the term names the check applies to (same_class,
	// distinct_class, reachable_from_root).
	Terms []string `yaml:"terms,omitempty"`

	// Count is the expected live class count (class_count).
	Count int `yaml:"count,omitempty"`

	// Term is the single term a value check applies to (const_value).
	Term string `yaml:"term,omitempty"`

	// Value is the expected constant, as a decimal string (const_value).
	Value string `yaml:"value,omitempty"`
}

// assertionTypes enumerates the supported assertion types.
var assertionTypes = map[string]bool{
	"same_class":          true,
	"distinct_class":      true,
	"class_count":         true,
	"const_value":         true,
	"reachable_from_root": true,
}

// LoadScenario reads and validates a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("harness: reading scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("harness: parsing scenario %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("harness: invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks structural consistency: a name, at least one term,
// unique term names, merges and assertions referencing known names, and
// known assertion types.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if len(s.Terms) == 0 {
		return fmt.Errorf("scenario %q has no terms", s.Name)
	}

	names := make(map[string]bool, len(s.Terms))
	for i, td := range s.Terms {
		if td.Name == "" {
			return fmt.Errorf("term %d has no name", i)
		}
		if td.Expr == "" {
			return fmt.Errorf("term %q has no expr", td.Name)
		}
		if names[td.Name] {
			return fmt.Errorf("duplicate term name %q", td.Name)
		}
		names[td.Name] = true
	}

	for i, m := range s.Merges {
		if len(m) != 2 {
			return fmt.Errorf("merge %d must have exactly two term names", i)
		}
		for _, n := range m {
			if !names[n] {
				return fmt.Errorf("merge %d references unknown term %q", i, n)
			}
		}
	}

	for i, a := range s.Assertions {
		if !assertionTypes[a.Type] {
			return fmt.Errorf("assertion %d has unknown type %q", i, a.Type)
		}
		for _, n := range a.Terms {
			if !names[n] {
				return fmt.Errorf("assertion %d references unknown term %q", i, n)
			}
		}
		if a.Term != "" && !names[a.Term] {
			return fmt.Errorf("assertion %d references unknown term %q", i, a.Term)
		}
	}
	return nil
}

package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validScenario() *Scenario {
	return &Scenario{
		Name: "ok",
		Terms: []TermDef{
			{Name: "a", Expr: "a"},
			{Name: "b", Expr: "b"},
		},
		Merges: [][]string{{"a", "b"}},
		Assertions: []Assertion{
			{Type: "same_class", Terms: []string{"a", "b"}},
		},
	}
}

func TestScenarioValidate_OK(t *testing.T) {
	assert.NoError(t, validScenario().Validate())
}

func TestScenarioValidate_RequiresName(t *testing.T) {
	s := validScenario()
	s.Name = ""
	assert.Error(t, s.Validate())
}

func TestScenarioValidate_RequiresTerms(t *testing.T) {
	s := validScenario()
	s.Terms = nil
	assert.Error(t, s.Validate())
}

func TestScenarioValidate_RejectsDuplicateTermNames(t *testing.T) {
	s := validScenario()
	s.Terms = append(s.Terms, TermDef{Name: "a", Expr: "a2"})
	assert.Error(t, s.Validate())
}

func TestScenarioValidate_RejectsBadMerge(t *testing.T) {
	s := validScenario()
	s.Merges = [][]string{{"a"}}
	assert.Error(t, s.Validate())

	s = validScenario()
	s.Merges = [][]string{{"a", "ghost"}}
	assert.Error(t, s.Validate())
}

func TestScenarioValidate_RejectsUnknownAssertionType(t *testing.T) {
	s := validScenario()
	s.Assertions = []Assertion{{Type: "wat"}}
	assert.Error(t, s.Validate())
}

func TestScenarioValidate_RejectsUnknownAssertionTerm(t *testing.T) {
	s := validScenario()
	s.Assertions = []Assertion{{Type: "const_value", Term: "ghost", Value: "1"}}
	assert.Error(t, s.Validate())
}

func TestLoadScenario_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.yaml")
	content := `name: sample
terms:
  - name: fa
    expr: "(f a)"
merges: []
assertions:
  - type: class_count
    count: 2
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "sample", s.Name)
	require.Len(t, s.Terms, 1)
	assert.Equal(t, "(f a)", s.Terms[0].Expr)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadScenario_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))
	_, err := LoadScenario(path)
	assert.Error(t, err)
}

package cli

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Error codes for suite loading.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeCompileError = "COMPILE_ERROR"
	ErrCodeNoSuite      = "NO_SUITE"
	ErrCodeInvalidSuite = "INVALID_SUITE"
)

// Suite is an expression suite loaded from a CUE file: the expressions
// to intern, the equalities to assert, and the analyses to enable.
//
// Expected shape:
//
//	suite: {
//		name: "arith"
//		analyses: ["constfold"]
//		exprs: ["(+ (+ 1 2) 3)", "6"]
//		equal: [["(* x 1)", "x"]]
//	}
type Suite struct {
	Name     string     `json:"name"`
	Analyses []string   `json:"analyses"`
	Exprs    []string   `json:"exprs"`
	Equal    [][]string `json:"equal"`
}

// LoadError represents an error that occurred during suite loading.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSuite loads and validates a suite from a CUE file.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}

	ctx := cuecontext.New()
	v := ctx.CompileBytes(data, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeCompileError, Message: fmt.Sprintf("compiling %s: %v", path, err)}
	}

	sv := v.LookupPath(cue.ParsePath("suite"))
	if !sv.Exists() {
		return nil, &LoadError{Code: ErrCodeNoSuite, Message: fmt.Sprintf("%s does not define a suite", path)}
	}

	var s Suite
	if err := sv.Decode(&s); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidSuite, Message: fmt.Sprintf("decoding suite: %v", err)}
	}
	if err := s.Validate(); err != nil {
		return nil, &LoadError{Code: ErrCodeInvalidSuite, Message: err.Error()}
	}
	return &s, nil
}

// Validate checks structural consistency of a suite.
func (s *Suite) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("suite name is required")
	}
	if len(s.Exprs) == 0 && len(s.Equal) == 0 {
		return fmt.Errorf("suite %q has no expressions", s.Name)
	}
	for i, pair := range s.Equal {
		if len(pair) != 2 {
			return fmt.Errorf("equal[%d] must have exactly two expressions", i)
		}
	}
	return nil
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/numhack/egraph/analysis"
	"github.com/numhack/egraph/term"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <suite.cue>",
		Short: "Validate a suite without building a graph",
		Long: `Validate a CUE expression suite: the suite structure, every
expression's syntax, and every referenced analysis name. All problems
are collected and reported together.

Example:
  egraph check ./suites/arith.cue`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	suite, err := LoadSuite(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load suite", err)
	}

	// Collect all problems before reporting.
	var problems []string
	for _, name := range suite.Analyses {
		if _, err := analysis.ByName(name); err != nil {
			problems = append(problems, err.Error())
		}
	}
	for _, src := range suite.Exprs {
		if _, err := term.Parse(src); err != nil {
			problems = append(problems, err.Error())
		}
	}
	for _, pair := range suite.Equal {
		for _, src := range pair {
			if _, err := term.Parse(src); err != nil {
				problems = append(problems, err.Error())
			}
		}
	}

	errOut := cmd.ErrOrStderr()
	for _, p := range problems {
		fmt.Fprintln(errOut, p)
	}
	if len(problems) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("suite %q has %d problem(s)", suite.Name, len(problems)))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "suite %q ok: %d expression(s), %d equalit(ies)\n",
		suite.Name, len(suite.Exprs), len(suite.Equal))
	return nil
}

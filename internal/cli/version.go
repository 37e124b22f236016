package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the CLI version string.
const Version = "0.1.0"

// NewVersionCommand creates the version command.
func NewVersionCommand(_ *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the egraph version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "egraph version %s\n", Version)
		},
	}
}

// Package cli provides the Cobra command structure for vibedit.
package cli

import (
	"github.com/spf13/cobra"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root vibedit command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "vibedit",
		Short: "Apply and remove inline formats in HTML",
		Long: `vibedit applies, removes and normalizes inline formats such as bold,
italic or a text colour over a span of an HTML fragment.

The span is given as character offsets into the text of the body. Nested and
adjacent format elements are merged so that the result carries each format
with as few elements as possible.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "", "write the result to a file instead of stdout")

	// Add subcommands.
	rootCmd.AddCommand(newEditCommand(a, opSurround))
	rootCmd.AddCommand(newEditCommand(a, opUnsurround))
	rootCmd.AddCommand(newEditCommand(a, opReformat))
	rootCmd.AddCommand(newEditCommand(a, opToggle))
	rootCmd.AddCommand(newFormatsCommand(a))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

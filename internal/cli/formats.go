package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newFormatsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List available formats",
		Long: `List the builtin formats and the ones declared in the config file.
Formats marked as valued accept --value, such as a colour.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, name := range a.registry.Names() {
				kind := "-"
				if a.registry.Valued(name) {
					kind = "valued"
				}
				if _, err := fmt.Fprintf(w, "%s\t%s\n", name, kind); err != nil {
					return err
				}
			}
			return w.Flush()
		},
	}
}

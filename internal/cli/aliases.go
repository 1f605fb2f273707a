package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/asteroid-impact-service/internal/adapter/neows"
)

func newAliasesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "aliases",
		Short: "List the built-in object aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := neows.DefaultAliases().List()
			if asJSON {
				return printJSON(cmd.OutOrStdout(), list)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tID")
			for _, a := range list {
				fmt.Fprintf(tw, "%s\t%s\n", a.Name, a.ID)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")
	return cmd
}

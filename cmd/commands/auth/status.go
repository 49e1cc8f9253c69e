package auth

import (
	"fmt"
	"text/tabwriter"

	"nathanbeddoewebdev/tspec/internal/providers"
	"nathanbeddoewebdev/tspec/internal/services/auth"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show authentication status for providers",
		Long: `Show which providers have stored API tokens.

Example:
  tspec auth status`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := providers.List()
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No providers registered.")
				return nil
			}

			store := newStore()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "PROVIDER\tSTATUS")
			for _, name := range names {
				ok, err := auth.HasToken(store, name)
				switch {
				case err != nil:
					fmt.Fprintf(w, "%s\terror (%v)\n", name, err)
				case ok:
					fmt.Fprintf(w, "%s\tlogged in\n", name)
				default:
					fmt.Fprintf(w, "%s\tnot logged in\n", name)
				}
			}
			return w.Flush()
		},
		SilenceUsage: true,
	}

	return cmd
}

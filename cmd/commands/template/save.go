package template

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/tspec/internal/templatestore"
	"nathanbeddoewebdev/tspec/internal/tui"

	"github.com/spf13/cobra"
)

// SaveCommand returns the "template save" command.
func SaveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <spec>",
		Short: "Save a template spec under a name",
		Long: `Validate a template spec and store it under a name. Saved templates
can be used anywhere a spec is accepted as @name. Saving an existing
name replaces its spec.

Examples:
  tspec template save web "osFamily=UBUNTU,minRam=4096"
  tspec template resolve @web`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return saveTemplate(cmd, args[0], args[1])
		},
		SilenceUsage: true,
	}
}

func saveTemplate(cmd *cobra.Command, name, spec string) error {
	name = strings.TrimPrefix(strings.TrimSpace(name), templatestore.RefPrefix)

	store, err := openStore(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to open template store: %w", err)
	}
	defer store.Close()

	saved, err := store.Save(cmd.Context(), name, spec)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.Success(fmt.Sprintf("Saved template @%s", saved.Name)))
	return nil
}

package template

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/tspec/internal/templatestore"
	"nathanbeddoewebdev/tspec/internal/tui"

	"github.com/spf13/cobra"
)

// DeleteCommand returns the "template delete" command.
func DeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "delete <name>",
		Short:        "Delete a saved template",
		Args:         cobra.ExactArgs(1),
		RunE:         runDelete,
		SilenceUsage: true,
	}
}

func runDelete(cmd *cobra.Command, args []string) error {
	name := strings.TrimPrefix(strings.TrimSpace(args[0]), templatestore.RefPrefix)

	store, err := openStore(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to open template store: %w", err)
	}
	defer store.Close()

	if err := store.Delete(cmd.Context(), name); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.Success(fmt.Sprintf("Deleted template @%s", name)))
	return nil
}

package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/tspec/internal/services/auth"
	"nathanbeddoewebdev/tspec/internal/tui"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout <provider>",
		Short: "Remove the stored API token for a provider",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := checkProvider(args[0])
			if err != nil {
				return err
			}

			err = newStore().DeleteToken(provider)
			switch {
			case errors.Is(err, auth.ErrTokenNotFound):
				fmt.Fprintln(cmd.OutOrStdout(), tui.Warning("No token stored for provider "+provider))
				return nil
			case err != nil:
				return fmt.Errorf("failed to remove token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), tui.Success("Removed token for provider "+provider))
			return nil
		},
		SilenceUsage: true,
	}
}

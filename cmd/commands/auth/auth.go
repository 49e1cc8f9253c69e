package auth

import (
	"fmt"
	"slices"

	"nathanbeddoewebdev/tspec/internal/providers"
	"nathanbeddoewebdev/tspec/internal/services/auth"
	"nathanbeddoewebdev/tspec/internal/util"

	"github.com/spf13/cobra"
)

// newStore returns the token store commands use. Tests swap it for a mock.
var newStore = auth.DefaultStore

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage authentication for providers",
		Long: `Manage authentication for providers.

Use this command group to log in and store API tokens securely.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(LogoutCommand())
	cmd.AddCommand(StatusCommand())

	return cmd
}

// checkProvider rejects names that are not registered providers.
func checkProvider(name string) (string, error) {
	normalized := util.NormalizeKey(name)
	if normalized == "" {
		return "", fmt.Errorf("provider is required")
	}
	known := providers.List()
	if !slices.Contains(known, normalized) {
		return "", fmt.Errorf("unknown provider %q (registered: %v)", name, known)
	}
	return normalized, nil
}

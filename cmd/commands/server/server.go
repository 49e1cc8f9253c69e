package server

import (
	"fmt"

	"nathanbeddoewebdev/tspec/internal/config"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "server",
		Short:             "Create servers from template specs",
		Long:              `Create servers on your configured cloud provider from a template spec.`,
		PersistentPreRunE: resolveProvider,
	}

	cmd.AddCommand(CreateCommand())

	cmd.PersistentFlags().String("provider", "", "Cloud provider to use (overrides default)")

	return cmd
}

// resolveProvider ensures the --provider flag has a value, falling back to the
// configured default when the flag was not explicitly passed.
func resolveProvider(cmd *cobra.Command, args []string) error {
	if cmd.Flag("provider").Changed {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.DefaultProvider != "" {
		cmd.Flag("provider").Value.Set(cfg.DefaultProvider)
		return nil
	}

	return fmt.Errorf("no provider specified: use --provider flag or set a default with 'tspec config set default-provider <name>'")
}

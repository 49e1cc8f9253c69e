package template

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/tspec/internal/config"
	"nathanbeddoewebdev/tspec/internal/domain"
	"nathanbeddoewebdev/tspec/internal/providers"
	"nathanbeddoewebdev/tspec/internal/services/auth"
	"nathanbeddoewebdev/tspec/internal/services/templates"
	"nathanbeddoewebdev/tspec/internal/templatestore"

	"github.com/spf13/cobra"
)

// NewCommand returns the "template" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Resolve, build and save templates",
		Long: `Resolve template specs against a provider's catalog, build them
interactively, and keep named templates for later use as @name.`,
	}

	cmd.AddCommand(ResolveCommand())
	cmd.AddCommand(BuildCommand())
	cmd.AddCommand(SaveCommand())
	cmd.AddCommand(ListCommand())
	cmd.AddCommand(DeleteCommand())

	return cmd
}

// addProviderFlag registers --provider on commands that talk to a provider.
func addProviderFlag(cmd *cobra.Command) {
	cmd.Flags().String("provider", "", "Cloud provider to use (overrides default)")
	cmd.PreRunE = resolveProvider
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

func catalogFor(cmd *cobra.Command) (domain.CatalogProvider, error) {
	return providers.GetCatalog(cmd.Flag("provider").Value.String(), auth.DefaultStore())
}

// newService builds a template service using the configured default spec.
func newService() (*templates.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return templates.NewService(cfg.DefaultTemplate, openStore), nil
}

func openStore(ctx context.Context) (templatestore.Store, error) {
	return templatestore.Open(ctx)
}

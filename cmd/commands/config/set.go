package config

import (
	"fmt"
	"slices"
	"strings"

	"nathanbeddoewebdev/tspec/internal/config"
	"nathanbeddoewebdev/tspec/internal/providers"
	"nathanbeddoewebdev/tspec/internal/util"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  tspec config set default-provider hetzner\n" +
			"  tspec config set default-template \"osFamily=UBUNTU,minRam=2048\"",
		Args:         cobra.ExactArgs(2),
		RunE:         runSet,
		SilenceUsage: true,
	}

	return cmd
}

// validators maps key names to checks that need more than the key's own
// Set, such as the provider registry.
var validators = map[string]func(value string) error{
	"default-provider": validateProvider,
}

func runSet(cmd *cobra.Command, args []string) error {
	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}
	value := args[1]

	if validate, ok := validators[spec.Name]; ok {
		if err := validate(value); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := spec.Set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, spec.Get(cfg))
	return nil
}

// validateProvider checks that the given name is a registered provider.
func validateProvider(name string) error {
	known := providers.List()
	if slices.Contains(known, util.NormalizeKey(name)) {
		return nil
	}
	return fmt.Errorf("unknown provider %q (registered: %s)", name, strings.Join(known, ", "))
}

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"nathanbeddoewebdev/tspec/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/tspec/cmd/commands/config"
	"nathanbeddoewebdev/tspec/cmd/commands/server"
	"nathanbeddoewebdev/tspec/cmd/commands/spec"
	"nathanbeddoewebdev/tspec/cmd/commands/template"
	"nathanbeddoewebdev/tspec/internal/config"
	"nathanbeddoewebdev/tspec/internal/providers"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	// Run the root's logging hook as well as the provider hooks of the
	// command groups.
	cobra.EnableTraverseRunHooks = true

	var cmd = &cobra.Command{
		Use:   "tspec",
		Short: "Parse and resolve compact server template specs",
		Long: `tspec parses template specs such as

  osFamily=UBUNTU,minRam=2048,locationId=fsn1

validates them, resolves them against a cloud provider's catalog of
locations, server types and images, and creates servers from them.

Supported providers: Hetzner.

Quick start:
  tspec auth login hetzner                         # Store your API token
  tspec spec parse "osFamily=UBUNTU,minRam=2048"   # Check a spec
  tspec template resolve "osFamily=UBUNTU"         # See what it selects
  tspec template save web "osFamily=UBUNTU,minRam=4096"
  tspec server create --name web-1 --template @web`,
		PersistentPreRunE: setupLogging,
	}

	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
	cmd.PersistentFlags().String("log-format", "", "Log format: text or json (overrides config)")

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(server.NewCommand())
	cmd.AddCommand(spec.NewCommand())
	cmd.AddCommand(template.NewCommand())

	return cmd
}

// setupLogging installs the default logger from the config file, with the
// --log-level and --log-format flags taking precedence.
func setupLogging(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	if level != "" {
		if err := config.ValidateLogLevel(level); err != nil {
			return err
		}
	}
	if format != "" {
		if err := config.ValidateLogFormat(format); err != nil {
			return err
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging := cfg.Logging.Merge(config.Logging{LevelStr: level, Format: format})
	logging.SetDefaultLogger(cmd.ErrOrStderr())
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	providers.RegisterHetzner()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var root = rootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

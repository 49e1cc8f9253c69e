package config

import (
	"nathanbeddoewebdev/tspec/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tspec configuration",
		Long: "View and modify persistent tspec settings.\n\n" +
			"Configuration is stored at ~/.config/tspec/config.json.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}

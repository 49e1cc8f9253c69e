package spec

import (
	"github.com/spf13/cobra"
)

// NewCommand returns the "spec" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spec",
		Short: "Work with template spec strings",
		Long: `Work with template spec strings.

A template spec is a comma-separated list of key=value pairs describing the
hardware, image, login and location a server should get, for example:

  osFamily=UBUNTU,osVersionMatches=24\..*,minRam=2048,locationId=fsn1`,
	}

	cmd.AddCommand(ParseCommand())

	return cmd
}

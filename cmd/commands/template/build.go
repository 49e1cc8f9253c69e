package template

import (
	"errors"
	"fmt"
	"os"

	"nathanbeddoewebdev/tspec/internal/tui"
	"nathanbeddoewebdev/tspec/internal/util"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// BuildCommand returns the "template build" command.
func BuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a template spec interactively",
		Long: `Open an interactive form that builds a template spec from the
provider's locations, server types and images. The resulting spec is
printed, and saved under --save when given.

Examples:
  tspec template build
  tspec template build --provider hetzner --save web`,
		Args:         cobra.NoArgs,
		RunE:         runBuild,
		SilenceUsage: true,
	}

	addProviderFlag(cmd)
	cmd.Flags().String("save", "", "Save the built spec under this name")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("save")
	if name != "" {
		if err := util.ValidateTemplateName(name); err != nil {
			return err
		}
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("template build requires a terminal (pass a spec to 'tspec template save' instead)")
	}

	catalog, err := catalogFor(cmd)
	if err != nil {
		return err
	}

	spec, err := tui.BuildSpecForm(cmd.Context(), catalog)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Template build cancelled.")
			return nil
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.Spec(spec))
	if name == "" {
		return nil
	}
	return saveTemplate(cmd, name, spec)
}

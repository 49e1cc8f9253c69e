package spec

import (
	"encoding/json"
	"fmt"
	"strings"

	"nathanbeddoewebdev/tspec/internal/domain"
	"nathanbeddoewebdev/tspec/internal/templatespec"
	"nathanbeddoewebdev/tspec/internal/tui"

	"github.com/spf13/cobra"
)

// ParseCommand returns the "spec parse" command.
func ParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <spec>",
		Short: "Parse and validate a template spec",
		Long: `Parse and validate a template spec, printing the recognized fields and
its canonical form.

Supported keys:
` + keysHelp() + `
Examples:
  tspec spec parse "osFamily=UBUNTU,minRam=2048"
  tspec spec parse "hardwareId=cx22,imageId=ubuntu-24.04" -o json`,
		Args:         cobra.ExactArgs(1),
		RunE:         runParse,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")

	spec, err := templatespec.Parse(args[0])
	if err != nil {
		return err
	}

	switch output {
	case "json":
		masked, err := templatespec.Parse(spec.Redacted())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(masked)
	case "table":
		fmt.Fprint(cmd.OutOrStdout(), renderSpec(spec))
		return nil
	default:
		return fmt.Errorf("unknown output format %q (use table or json)", output)
	}
}

func renderSpec(spec *templatespec.Spec) string {
	keys := spec.Keys()
	fields := make([]tui.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, tui.Field{Label: k.String(), Value: displayValue(spec, k)})
	}

	var b strings.Builder
	if len(fields) == 0 {
		b.WriteString("No keys set; any hardware and image will do.\n")
	} else {
		b.WriteString(tui.RenderFields("Fields", fields))
	}
	fmt.Fprintf(&b, "\nCanonical: %s\n", tui.Spec(spec.Redacted()))
	return b.String()
}

func displayValue(spec *templatespec.Spec, k templatespec.Key) string {
	v, _ := spec.Value(k)
	switch v := v.(type) {
	case domain.OsFamily:
		return v.Name()
	case string:
		if k == templatespec.KeyLoginUser {
			return maskLoginUser(v)
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}

// maskLoginUser hides the password of a user:password value.
func maskLoginUser(value string) string {
	if user, _, ok := strings.Cut(value, ":"); ok {
		return user + ":****"
	}
	return value
}

func keysHelp() string {
	var b strings.Builder
	for _, k := range templatespec.AllKeys() {
		fmt.Fprintf(&b, "  %-22s %s\n", k.String(), k.Kind())
	}
	return b.String()
}

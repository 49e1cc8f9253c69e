package template

import (
	"encoding/json"
	"fmt"
	"strings"

	"nathanbeddoewebdev/tspec/internal/domain"
	"nathanbeddoewebdev/tspec/internal/template"
	"nathanbeddoewebdev/tspec/internal/templatespec"
	"nathanbeddoewebdev/tspec/internal/tui"

	"github.com/spf13/cobra"
)

// ResolveCommand returns the "template resolve" command.
func ResolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [<spec>|@name]",
		Short: "Resolve a spec to concrete hardware, image and location",
		Long: `Resolve a template spec against the provider's catalog and print the
hardware, image and location it selects.

Without an argument the configured default-template is used.

Examples:
  tspec template resolve "osFamily=UBUNTU,minRam=4096"
  tspec template resolve @web --provider hetzner
  tspec template resolve "hardwareId=cx22,imageId=debian-12" -o json`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runResolve,
		SilenceUsage: true,
	}

	addProviderFlag(cmd)
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runResolve(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unknown output format %q (use table or json)", output)
	}

	catalog, err := catalogFor(cmd)
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}
	defer svc.Close()

	var arg string
	if len(args) > 0 {
		arg = args[0]
	}

	tmpl, spec, err := svc.Resolve(cmd.Context(), catalog, arg)
	if err != nil {
		return err
	}

	if output == "json" {
		return printTemplateJSON(cmd, spec, tmpl)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderTemplate(spec, tmpl))
	return nil
}

// resolvedTemplate is the JSON shape of a resolution.
type resolvedTemplate struct {
	Spec     string             `json:"spec"`
	Template *template.Template `json:"template"`
}

func printTemplateJSON(cmd *cobra.Command, spec *templatespec.Spec, tmpl *template.Template) error {
	out := resolvedTemplate{Spec: spec.Redacted(), Template: redact(tmpl)}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// redact returns a copy of tmpl with any password masked.
func redact(tmpl *template.Template) *template.Template {
	if tmpl.Credentials == nil || !tmpl.Credentials.HasPassword() {
		return tmpl
	}
	cp := *tmpl
	creds := *tmpl.Credentials
	creds.Password = "****"
	cp.Credentials = &creds
	return &cp
}

func renderTemplate(spec *templatespec.Spec, tmpl *template.Template) string {
	location := tmpl.LocationName()
	if location == "" {
		location = "provider default"
	}

	fields := []tui.Field{
		{Label: "Hardware", Value: hardwareLabel(tmpl.Hardware)},
		{Label: "Image", Value: imageLabel(tmpl.Image)},
		{Label: "Location", Value: location},
	}
	if creds := tmpl.Credentials; creds != nil {
		login := creds.User
		if creds.HasPassword() {
			login += " (password set)"
		}
		if creds.AuthenticateSudo {
			login += ", sudo asks for password"
		}
		fields = append(fields, tui.Field{Label: "Login", Value: login})
	}

	return tui.RenderFields("Template", fields)
}

func hardwareLabel(st domain.ServerTypeSpec) string {
	label := fmt.Sprintf("%s (%d vCPU, %s GB RAM, %d GB disk, %s)",
		st.Name, st.Cores, formatFloat(st.Memory), st.Disk, st.Architecture)
	if st.PriceMonthly != "" {
		label += " " + st.PriceMonthly + "/mo"
	}
	return label
}

func imageLabel(img domain.ImageSpec) string {
	name := img.Name
	if name == "" {
		name = img.ID
	}
	if img.Description != "" && img.Description != name {
		return name + " - " + img.Description
	}
	return name
}

func formatFloat(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", f), "0"), ".")
}

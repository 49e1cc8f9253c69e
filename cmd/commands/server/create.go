package server

import (
	"context"
	"fmt"
	"strings"

	"nathanbeddoewebdev/tspec/internal/config"
	"nathanbeddoewebdev/tspec/internal/domain"
	"nathanbeddoewebdev/tspec/internal/providers"
	"nathanbeddoewebdev/tspec/internal/services/auth"
	"nathanbeddoewebdev/tspec/internal/services/templates"
	"nathanbeddoewebdev/tspec/internal/templatestore"
	"nathanbeddoewebdev/tspec/internal/util"

	"github.com/spf13/cobra"
)

func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new server from a template",
		Long: `Create a new server from a template spec. The spec is resolved against
the provider's catalog to pick the server type, image and location.

Without --template the configured default-template is used.

Examples:
  # Cheapest Ubuntu server with at least 4 GB of RAM
  tspec server create --name web-1 --template "osFamily=UBUNTU,minRam=4096"

  # Saved template with SSH keys
  tspec server create --provider hetzner \
    --name web-1 \
    --template @web \
    --ssh-key my-key \
    --ssh-key deploy-key

  # JSON output for scripting
  tspec server create --name web-1 --template @web -o json`,
		Args:         cobra.NoArgs,
		RunE:         runCreate,
		SilenceUsage: true,
	}

	cmd.Flags().String("name", "", "Server name (must be a valid hostname)")
	cmd.Flags().String("template", "", "Template spec or @name of a saved template")
	cmd.Flags().StringArray("ssh-key", nil, "SSH key name or ID (can be specified multiple times)")
	cmd.Flags().StringArray("label", nil, "Label in key=value format (can be specified multiple times)")
	cmd.Flags().Bool("start", true, "Start server after creation")

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("name")
	tmplArg, _ := cmd.Flags().GetString("template")
	sshKeys, _ := cmd.Flags().GetStringArray("ssh-key")
	labels, _ := cmd.Flags().GetStringArray("label")
	output, _ := cmd.Flags().GetString("output")

	if name == "" {
		return fmt.Errorf("missing required flag: --name")
	}
	if err := util.ValidateServerName(name); err != nil {
		return err
	}
	if output != "table" && output != "json" {
		return fmt.Errorf("unknown output format %q (use table or json)", output)
	}

	providerName := cmd.Flag("provider").Value.String()
	provider, err := providers.Get(providerName, auth.DefaultStore())
	if err != nil {
		return err
	}
	catalog, ok := provider.(domain.CatalogProvider)
	if !ok {
		return fmt.Errorf("%s cannot resolve templates: provider has no catalog", provider.GetDisplayName())
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	svc := templates.NewService(cfg.DefaultTemplate, openStore)
	defer svc.Close()

	ctx := cmd.Context()
	tmpl, spec, err := svc.Resolve(ctx, catalog, tmplArg)
	if err != nil {
		return fmt.Errorf("failed to resolve template: %w", err)
	}

	opts, err := tmpl.CreateOpts(name)
	if err != nil {
		return err
	}
	if len(sshKeys) > 0 {
		opts.SSHKeyIdentifiers = sshKeys
	}
	if len(labels) > 0 {
		opts.Labels = parseLabels(labels)
	}
	if cmd.Flags().Changed("start") {
		start, _ := cmd.Flags().GetBool("start")
		opts.StartAfterCreate = &start
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Template %s\n", spec.Redacted())
	logCreateOpts(cmd, opts)

	server, err := provider.CreateServer(ctx, opts)
	if err != nil {
		logCreateOptsFull(cmd, opts)
		return fmt.Errorf("failed to create server: %w", err)
	}

	switch output {
	case "json":
		return printServerJSON(cmd, server)
	default:
		printCreateTable(cmd, server)
	}
	return nil
}

func openStore(ctx context.Context) (templatestore.Store, error) {
	return templatestore.Open(ctx)
}

func logCreateOpts(cmd *cobra.Command, opts domain.CreateServerOpts) {
	location := opts.Location
	if location == "" {
		location = "(auto)"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Creating server %q [type=%s, image=%s, location=%s]\n",
		opts.Name, opts.ServerType, opts.Image, location)
}

func logCreateOptsFull(cmd *cobra.Command, opts domain.CreateServerOpts) {
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w, "\nRequest details:")
	fmt.Fprintf(w, "  Name:        %s\n", opts.Name)
	fmt.Fprintf(w, "  Server type: %s\n", opts.ServerType)
	fmt.Fprintf(w, "  Image:       %s\n", opts.Image)
	if opts.Location != "" {
		fmt.Fprintf(w, "  Location:    %s\n", opts.Location)
	} else {
		fmt.Fprintf(w, "  Location:    (auto)\n")
	}
	if len(opts.SSHKeyIdentifiers) > 0 {
		fmt.Fprintf(w, "  SSH keys:    %s\n", strings.Join(opts.SSHKeyIdentifiers, ", "))
	}
	if opts.UserData != "" {
		fmt.Fprintf(w, "  User data:   %d bytes\n", len(opts.UserData))
	}
}

func parseLabels(labels []string) map[string]string {
	result := make(map[string]string, len(labels))
	for _, l := range labels {
		k, v, ok := strings.Cut(l, "=")
		if ok {
			result[k] = v
		}
	}
	return result
}

package template

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"nathanbeddoewebdev/tspec/internal/templatespec"

	"github.com/spf13/cobra"
)

// ListCommand returns the "template list" command.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "list",
		Short:        "List saved templates",
		Args:         cobra.NoArgs,
		RunE:         runList,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

// savedTemplate is the JSON shape of a saved template.
type savedTemplate struct {
	Name      string `json:"name"`
	Spec      string `json:"spec"`
	UpdatedAt string `json:"updated_at"`
}

func runList(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unknown output format %q (use table or json)", output)
	}

	store, err := openStore(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to open template store: %w", err)
	}
	defer store.Close()

	list, err := store.List(cmd.Context())
	if err != nil {
		return err
	}

	rows := make([]savedTemplate, 0, len(list))
	for _, t := range list {
		rows = append(rows, savedTemplate{
			Name:      t.Name,
			Spec:      redactSpec(t.Spec),
			UpdatedAt: t.UpdatedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
		})
	}

	if output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	}

	if len(rows) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved templates.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tSPEC\tUPDATED")
	for _, r := range rows {
		fmt.Fprintf(w, "@%s\t%s\t%s\n", r.Name, r.Spec, r.UpdatedAt)
	}
	return w.Flush()
}

// redactSpec masks a stored login password. Stored specs were validated on
// save; anything that no longer parses is shown as is.
func redactSpec(raw string) string {
	spec, err := templatespec.Parse(raw)
	if err != nil {
		return raw
	}
	return spec.Redacted()
}

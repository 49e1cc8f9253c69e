package server

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"nathanbeddoewebdev/tspec/internal/domain"
	"nathanbeddoewebdev/tspec/internal/tui"

	"github.com/spf13/cobra"
)

// printServerJSON encodes a server as indented JSON to the command's stdout.
func printServerJSON(cmd *cobra.Command, server *domain.Server) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(server)
}

func printCreateTable(cmd *cobra.Command, server *domain.Server) {
	fmt.Fprintln(cmd.OutOrStdout(), tui.Success("Server created successfully!"))
	fmt.Fprintln(cmd.OutOrStdout())

	printServerDetail(cmd, server)

	if pw, ok := server.Metadata["root_password"].(string); ok && pw != "" {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  Root Password:\t%s\n", pw)
		fmt.Fprintln(w, "  Save this now - it will not be shown again.")
		w.Flush()
	}
}

// printServerDetail prints a vertical key-value table of all server fields.
func printServerDetail(cmd *cobra.Command, server *domain.Server) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "  ID:\t%s\n", server.ID)
	fmt.Fprintf(w, "  Name:\t%s\n", server.Name)
	fmt.Fprintf(w, "  Status:\t%s\n", server.Status)
	fmt.Fprintf(w, "  Provider:\t%s\n", server.Provider)
	fmt.Fprintf(w, "  Type:\t%s\n", server.ServerType)

	if server.Image != "" {
		fmt.Fprintf(w, "  Image:\t%s\n", server.Image)
	}

	fmt.Fprintf(w, "  Region:\t%s\n", server.Region)

	if server.PublicIPv4 != "" {
		fmt.Fprintf(w, "  IPv4:\t%s\n", server.PublicIPv4)
	}
	if server.PublicIPv6 != "" {
		fmt.Fprintf(w, "  IPv6:\t%s\n", server.PublicIPv6)
	}

	if !server.CreatedAt.IsZero() {
		fmt.Fprintf(w, "  Created:\t%s\n", server.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	}

	w.Flush()
}

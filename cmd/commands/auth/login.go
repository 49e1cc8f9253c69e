package auth

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"nathanbeddoewebdev/tspec/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <provider>",
		Short: "Store an API token for a provider",
		Long: `Store an API token for a provider using the local keychain.

The token is read from --token, or prompted for without echo. When stdin
is not a terminal the first line of stdin is used.

Examples:
  tspec auth login hetzner
  echo "$HCLOUD_TOKEN" | tspec auth login hetzner`,
		Args:         cobra.ExactArgs(1),
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("token", "", "API token (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	provider, err := checkProvider(args[0])
	if err != nil {
		return err
	}

	token, _ := cmd.Flags().GetString("token")
	token = strings.TrimSpace(token)
	if token == "" {
		if token, err = readToken(cmd); err != nil {
			return err
		}
	}

	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	if err := newStore().SetToken(provider, token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tui.Success("Saved token for provider "+provider))
	return nil
}

// readToken prompts on a terminal, otherwise reads one line from stdin.
func readToken(cmd *cobra.Command) (string, error) {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Enter API token: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read token: %w", err)
	}
	return strings.TrimSpace(line), nil
}

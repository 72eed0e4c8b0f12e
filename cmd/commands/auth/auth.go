package auth

import (
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/opsdeck/cmd/commands/crud"
	"nathanbeddoewebdev/opsdeck/internal/auth"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Overridden in tests.
var (
	store        = auth.DefaultStore
	readPassword = func() ([]byte, error) { return term.ReadPassword(int(os.Stdin.Fd())) }
)

// NewCommand returns the "auth" command group.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage cloud provider tokens",
		Long: `Manage API tokens for the cloud providers servers can be imported from.

Tokens are kept in the OS keychain. A provider's environment variable
(e.g. $HCLOUD_TOKEN) takes precedence over the stored token.`,
		Annotations: map[string]string{crud.AnnotationStandalone: "true"},
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(LogoutCommand())
	cmd.AddCommand(StatusCommand())

	return cmd
}

func lookupProvider(name string) (auth.Provider, error) {
	p, ok := auth.LookupProvider(name)
	if !ok {
		names := make([]string, 0, len(auth.Providers()))
		for _, p := range auth.Providers() {
			names = append(names, p.Name)
		}
		return auth.Provider{}, fmt.Errorf("unknown provider %q (supported: %s)", name, strings.Join(names, ", "))
	}
	return p, nil
}

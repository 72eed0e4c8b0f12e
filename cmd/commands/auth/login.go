package auth

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// LoginCommand returns "auth login", which stores a provider token in the keychain.
func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <provider>",
		Short: "Store an API token for a provider",
		Long: `Store an API token for a provider using the local keychain.

Example:
  opsdeck auth login hetzner`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := lookupProvider(args[0])
			if err != nil {
				return err
			}

			token, _ := cmd.Flags().GetString("token")
			token = strings.TrimSpace(token)
			if token == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Enter API token: ")
				bytes, err := readPassword()
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				token = strings.TrimSpace(string(bytes))
			}
			if token == "" {
				return fmt.Errorf("token cannot be empty")
			}

			if err := store().SetToken(provider.Name, token); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved token for %s\n", provider.DisplayName)
			return nil
		},
	}

	cmd.Flags().String("token", "", "API token (optional, overrides prompt)")

	return cmd
}

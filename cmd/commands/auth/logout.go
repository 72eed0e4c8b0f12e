package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/opsdeck/internal/auth"

	"github.com/spf13/cobra"
)

// LogoutCommand returns "auth logout".
func LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "logout <provider>",
		Short:        "Remove the stored token for a provider",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := lookupProvider(args[0])
			if err != nil {
				return err
			}
			err = store().DeleteToken(provider.Name)
			if errors.Is(err, auth.ErrTokenNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "No token stored for %s\n", provider.DisplayName)
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed token for %s\n", provider.DisplayName)
			return nil
		},
	}
}

package auth

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"nathanbeddoewebdev/opsdeck/internal/auth"

	"github.com/spf13/cobra"
)

// StatusCommand returns "auth status", which reports where each provider token comes from.
func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which providers have a token",
		Long: `Show which providers have an API token, and where it comes from.

Example:
  opsdeck auth status`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := store()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			for _, p := range auth.Providers() {
				fmt.Fprintf(w, "%s:\t%s\n", p.Name, tokenStatus(s, p))
			}
			return w.Flush()
		},
	}

	return cmd
}

func tokenStatus(s auth.Store, p auth.Provider) string {
	if p.EnvVar != "" && os.Getenv(p.EnvVar) != "" {
		return "logged in (from $" + p.EnvVar + ")"
	}
	_, err := s.GetToken(p.Name)
	switch {
	case err == nil:
		return "logged in"
	case errors.Is(err, auth.ErrTokenNotFound):
		return "not logged in"
	default:
		return fmt.Sprintf("error (%v)", err)
	}
}

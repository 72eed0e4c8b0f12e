package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"nathanbeddoewebdev/opsdeck/cmd/commands/audit"
	"nathanbeddoewebdev/opsdeck/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/opsdeck/cmd/commands/config"
	"nathanbeddoewebdev/opsdeck/cmd/commands/crud"
	"nathanbeddoewebdev/opsdeck/cmd/commands/dashboard"
	"nathanbeddoewebdev/opsdeck/cmd/commands/devserver"
	"nathanbeddoewebdev/opsdeck/cmd/commands/dns"
	"nathanbeddoewebdev/opsdeck/cmd/commands/email"
	"nathanbeddoewebdev/opsdeck/cmd/commands/repo"
	"nathanbeddoewebdev/opsdeck/cmd/commands/server"
	"nathanbeddoewebdev/opsdeck/cmd/commands/storage"
	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/auditlog"
	"nathanbeddoewebdev/opsdeck/internal/domain"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
// The returned func closes the App opened for the command, if any.
func rootCmd() (*cobra.Command, func() error) {
	var a *app.App

	var cmd = &cobra.Command{
		Use:     "opsdeck",
		Short:   "An admin console for servers, domains, email, repositories and storage",
		Version: app.Version,
		Long: `opsdeck is a command-line admin console for an infrastructure inventory
API. It lists, filters, creates, edits and deletes servers, domains and
their DNS records, email accounts, repositories and storage buckets, with
interactive TUI browsers for guided workflows.

Quick start:
  opsdeck devserver &              # Local API with demo data
  opsdeck dashboard                # Overview of the whole inventory
  opsdeck server list              # List all servers
  opsdeck domain browse            # Interactive domain browser
  opsdeck domain dns add ncc-tech.com --name api --value 10.0.0.5`,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if annotated(cmd, crud.AnnotationStandalone) {
				return nil
			}
			apiURL, _ := cmd.Flags().GetString("api-url")
			logLevel, _ := cmd.Flags().GetString("log-level")

			opened, err := app.Open(app.Options{
				APIURL:   apiURL,
				LogLevel: logLevel,
				TUI:      annotated(cmd, crud.AnnotationTUI),
			})
			if err != nil {
				return err
			}
			a = opened

			ctx := app.NewContext(cmd.Context(), a)
			ctx = auditlog.WithMetadata(ctx, auditlog.Metadata{
				Source: cmd.CommandPath(),
				Args:   os.Args[1:],
				Origin: auditlog.RedactURL(a.Origin),
			})
			cmd.SetContext(ctx)
			a.Logger.Debug().Str("command", cmd.CommandPath()).Msg("starting")
			return nil
		},
	}

	cmd.PersistentFlags().String("api-url", "", "Inventory API base URL (overrides $OPSDECK_API_URL and config)")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error or disabled")

	cmd.AddCommand(server.NewCommand())
	cmd.AddCommand(dns.NewCommand())
	cmd.AddCommand(email.NewCommand())
	cmd.AddCommand(repo.NewCommand())
	cmd.AddCommand(storage.NewCommand())
	cmd.AddCommand(dashboard.NewCommand())
	cmd.AddCommand(audit.NewCommand())
	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(devserver.NewCommand())

	closeApp := func() error {
		if a == nil {
			return nil
		}
		return a.Close()
	}
	return cmd, closeApp
}

// annotated reports whether cmd or one of its parents carries key.
func annotated(cmd *cobra.Command, key string) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[key] == "true" {
			return true
		}
	}
	return false
}

// printError writes err for the user: the short message first, then the
// underlying cause when it adds something.
func printError(w io.Writer, err error) {
	msg := domain.Message(err)
	fmt.Fprintf(w, "Error: %s\n", msg)

	var opErr *domain.OpError
	if errors.As(err, &opErr) && opErr.Err != nil && opErr.Err.Error() != msg {
		fmt.Fprintf(w, "  %s\n", opErr.Err)
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	root, closeApp := rootCmd()
	err := root.Execute()
	if cerr := closeApp(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		printError(root.ErrOrStderr(), err)
		os.Exit(1)
	}
}

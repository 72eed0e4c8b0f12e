// Package email provides the "email" command.
package email

import (
	"time"

	"nathanbeddoewebdev/opsdeck/cmd/commands/crud"
	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/email/domain"
	"nathanbeddoewebdev/opsdeck/internal/email/views"
	"nathanbeddoewebdev/opsdeck/internal/tui/browse"

	"github.com/spf13/cobra"
)

// NewCommand returns the "email" command tree.
func NewCommand() *cobra.Command {
	return crud.NewCommand(crud.Spec[domain.Account, domain.CreateOpts, domain.UpdateOpts, views.Draft]{
		Use:     "email",
		Aliases: []string{"emails", "mailbox"},
		Short:   "Manage email accounts and their quotas",
		Area:    views.Area(time.Now),
		Service: func(a *app.App) browse.Service[domain.Account, domain.CreateOpts, domain.UpdateOpts] {
			return a.Emails
		},
	})
}

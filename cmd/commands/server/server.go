// Package server provides the "server" command.
package server

import (
	"nathanbeddoewebdev/opsdeck/cmd/commands/crud"
	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/server/domain"
	"nathanbeddoewebdev/opsdeck/internal/server/views"
	"nathanbeddoewebdev/opsdeck/internal/tui/browse"

	"github.com/spf13/cobra"
)

// NewCommand returns the "server" command tree.
func NewCommand() *cobra.Command {
	cmd := crud.NewCommand(crud.Spec[domain.Server, domain.CreateOpts, domain.UpdateOpts, views.Draft]{
		Use:     "server",
		Aliases: []string{"servers"},
		Short:   "Manage servers in the inventory",
		Area:    views.Area(),
		Service: func(a *app.App) browse.Service[domain.Server, domain.CreateOpts, domain.UpdateOpts] {
			return a.Servers
		},
	})
	cmd.AddCommand(ImportCommand())
	return cmd
}

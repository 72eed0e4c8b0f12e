// Package repo provides the "repo" command.
package repo

import (
	"nathanbeddoewebdev/opsdeck/cmd/commands/crud"
	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/repo/domain"
	"nathanbeddoewebdev/opsdeck/internal/repo/views"
	"nathanbeddoewebdev/opsdeck/internal/tui/browse"

	"github.com/spf13/cobra"
)

// NewCommand returns the "repo" command tree.
func NewCommand() *cobra.Command {
	return crud.NewCommand(crud.Spec[domain.Repository, domain.CreateOpts, domain.UpdateOpts, views.Draft]{
		Use:     "repo",
		Aliases: []string{"repos", "repository"},
		Short:   "Manage code repositories and their CI status",
		Area:    views.Area(),
		Service: func(a *app.App) browse.Service[domain.Repository, domain.CreateOpts, domain.UpdateOpts] {
			return a.Repositories
		},
	})
}

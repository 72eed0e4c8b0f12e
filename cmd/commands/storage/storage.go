// Package storage provides the "storage" command.
package storage

import (
	"nathanbeddoewebdev/opsdeck/cmd/commands/crud"
	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/storage/domain"
	"nathanbeddoewebdev/opsdeck/internal/storage/views"
	"nathanbeddoewebdev/opsdeck/internal/tui/browse"

	"github.com/spf13/cobra"
)

// NewCommand returns the "storage" command tree.
func NewCommand() *cobra.Command {
	return crud.NewCommand(crud.Spec[domain.Bucket, domain.CreateOpts, domain.UpdateOpts, views.Draft]{
		Use:     "storage",
		Aliases: []string{"bucket", "buckets"},
		Short:   "Manage storage buckets and their usage",
		Area:    views.Area(),
		Service: func(a *app.App) browse.Service[domain.Bucket, domain.CreateOpts, domain.UpdateOpts] {
			return a.Storage
		},
	})
}

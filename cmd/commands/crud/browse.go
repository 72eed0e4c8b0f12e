package crud

import (
	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/resource"
	"nathanbeddoewebdev/opsdeck/internal/tui/browse"

	"github.com/spf13/cobra"
)

// BrowseCommand returns the "browse" command, which opens the interactive
// list, detail and form screens.
func BrowseCommand[T domain.Entity, C resource.Input, U resource.Patch, D any](s Spec[T, C, U, D]) *cobra.Command {
	return &cobra.Command{
		Use:          "browse",
		Aliases:      []string{"ui"},
		Short:        "Browse " + s.Area.Nouns.Plural + " interactively",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Annotations:  map[string]string{AnnotationTUI: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}
			cfg := browse.Config[T, C, U, D]{
				Area:    s.Area,
				Service: s.Service(a),
				Prefs:   a.Prefs,
				Origin:  a.Origin,
			}
			if s.Extras != nil {
				cfg.Extras = s.Extras(cmd.Context(), a)
			}
			return browse.Run(cmd.Context(), cfg)
		},
	}
}

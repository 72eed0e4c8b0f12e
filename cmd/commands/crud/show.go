package crud

import (
	"context"

	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/resource"

	"github.com/spf13/cobra"
)

// ShowCommand returns the "show <id>" command.
func ShowCommand[T domain.Entity, C resource.Input, U resource.Patch, D any](s Spec[T, C, U, D]) *cobra.Command {
	noun := s.Area.Nouns.Singular
	cmd := &cobra.Command{
		Use:          "show <id>",
		Short:        "Show details of one " + noun,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			a, err := app.FromContext(cmd.Context())
			if err != nil {
				return err
			}

			var item *T
			err = run(cmd, "Fetching "+noun+"...", func(ctx context.Context) error {
				var err error
				item, err = s.Service(a).Get(ctx, args[0])
				return err
			})
			if err != nil {
				return err
			}

			if output == "json" {
				return printJSON(cmd, item)
			}
			printDetail(cmd, s.Area.Detail(*item))
			return nil
		},
	}

	addOutputFlag(cmd)

	return cmd
}

package crud

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/form"
	"nathanbeddoewebdev/opsdeck/internal/resource"

	"github.com/spf13/cobra"
)

// UpdateCommand returns the "update <id>" command. Only the flags given
// are applied, and only values that differ from the stored record are sent.
func UpdateCommand[T domain.Entity, C resource.Input, U resource.Patch, D any](s Spec[T, C, U, D]) *cobra.Command {
	def := s.Area
	cmd := &cobra.Command{
		Use:          "update <id>",
		Short:        "Update a " + def.Nouns.Singular,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(cmd, s, args[0])
		},
	}

	addFieldFlags(cmd, def.Fields)
	cmd.Flags().Bool("no-input", false, "Never show progress spinners")
	addOutputFlag(cmd)

	return cmd
}

func runUpdate[T domain.Entity, C resource.Input, U resource.Patch, D any](cmd *cobra.Command, s Spec[T, C, U, D], id string) error {
	def := s.Area
	output, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	values := fieldValues(cmd, def.Fields)
	if len(values) == 0 {
		return fmt.Errorf("nothing to update: pass at least one field flag (see --help)")
	}
	a, err := app.FromContext(cmd.Context())
	if err != nil {
		return err
	}
	svc := s.Service(a)

	var current *T
	err = run(cmd, "Fetching "+def.Nouns.Singular+"...", func(ctx context.Context) error {
		var err error
		current, err = svc.Get(ctx, id)
		return err
	})
	if err != nil {
		return err
	}

	seed := def.FromEntity(*current)
	draft, err := def.Apply(form.ModeEdit, id, seed, values)
	if err != nil {
		return err
	}

	var item *T
	err = run(cmd, "Updating "+def.Nouns.Singular+"...", func(ctx context.Context) error {
		var err error
		item, err = svc.Update(ctx, id, def.ToUpdate(seed, draft))
		return err
	})
	if err != nil {
		return err
	}

	if output == "json" {
		return printJSON(cmd, item)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s.\n", describe(def.Nouns.Singular, (*item).Label(), (*item).Key()))
	return nil
}

package crud

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/form"
	"nathanbeddoewebdev/opsdeck/internal/resource"
	"nathanbeddoewebdev/opsdeck/internal/tui"

	"github.com/spf13/cobra"
)

// CreateCommand returns the "create" command. Every form field is a flag;
// in a terminal, required fields left unset are prompted for.
func CreateCommand[T domain.Entity, C resource.Input, U resource.Patch, D any](s Spec[T, C, U, D]) *cobra.Command {
	def := s.Area
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + def.Nouns.Singular,
		Long: "Create a " + def.Nouns.Singular + ".\n\n" +
			"Required fields that are not given as flags are prompted for when\n" +
			"running in a terminal. Use --no-input to fail instead.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, s)
		},
	}

	addFieldFlags(cmd, def.Fields)
	cmd.Flags().Bool("no-input", false, "Never prompt for missing fields")
	addOutputFlag(cmd)

	return cmd
}

func runCreate[T domain.Entity, C resource.Input, U resource.Patch, D any](cmd *cobra.Command, s Spec[T, C, U, D]) error {
	def := s.Area
	output, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	a, err := app.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	values := fieldValues(cmd, def.Fields)
	seed := def.Defaults()
	if interactive(cmd) {
		if err := tui.PromptMissing(def.Fields, seed, values); err != nil {
			return err
		}
	}

	draft, err := def.Apply(form.ModeCreate, "", seed, values)
	if err != nil {
		return err
	}

	var item *T
	err = run(cmd, "Creating "+def.Nouns.Singular+"...", func(ctx context.Context) error {
		var err error
		item, err = s.Service(a).Create(ctx, def.ToCreate(draft))
		return err
	})
	if err != nil {
		return err
	}

	if output == "json" {
		return printJSON(cmd, item)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s.\n", describe(def.Nouns.Singular, (*item).Label(), (*item).Key()))
	return nil
}

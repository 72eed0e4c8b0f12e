package crud

import (
	"context"
	"errors"
	"fmt"

	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/resource"
	"nathanbeddoewebdev/opsdeck/internal/tui"

	"github.com/spf13/cobra"
)

// DeleteCommand returns the "delete <id>" command. Without --yes it asks
// for confirmation, and refuses outright when it cannot ask.
func DeleteCommand[T domain.Entity, C resource.Input, U resource.Patch, D any](s Spec[T, C, U, D]) *cobra.Command {
	noun := s.Area.Nouns.Singular
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + noun,
		Long: "Delete a " + noun + ".\n\n" +
			"Examples:\n" +
			"  opsdeck " + s.Use + " delete <id>        # asks for confirmation\n" +
			"  opsdeck " + s.Use + " delete <id> --yes  # scripting",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, s, args[0])
		},
	}

	cmd.Flags().BoolP("yes", "y", false, "Delete without asking for confirmation")
	cmd.Flags().Bool("no-input", false, "Never prompt; requires --yes")

	return cmd
}

func runDelete[T domain.Entity, C resource.Input, U resource.Patch, D any](cmd *cobra.Command, s Spec[T, C, U, D], id string) error {
	noun := s.Area.Nouns.Singular
	a, err := app.FromContext(cmd.Context())
	if err != nil {
		return err
	}
	svc := s.Service(a)

	name := describe(noun, "", id)
	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		if !interactive(cmd) {
			return fmt.Errorf("refusing to delete %s without --yes", name)
		}
		if item, err := svc.Get(cmd.Context(), id); err == nil {
			name = describe(noun, (*item).Label(), id)
		}
		ok, err := tui.Confirm("Delete "+name+"?", "This cannot be undone.", "Delete")
		if errors.Is(err, tui.ErrAborted) || (err == nil && !ok) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Deletion cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	err = run(cmd, "Deleting "+noun+"...", func(ctx context.Context) error {
		return svc.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", name)
	return nil
}

package dns

import (
	"errors"
	"fmt"
	"os"

	"nathanbeddoewebdev/opsdeck/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal reports whether a confirmation prompt can be shown.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// DeleteCommand returns the "domain dns delete" subcommand.
func DeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <domain> <record-id>",
		Short: "Delete a DNS record",
		Long: `Delete a DNS record from the given domain.

Examples:
  opsdeck domain dns delete example.com rec-1a2b3c4d
  opsdeck domain dns delete example.com rec-1a2b3c4d --yes`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         runDelete,
	}

	cmd.Flags().BoolP("yes", "y", false, "Delete without asking for confirmation")

	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	recordID := args[1]

	svc, err := recordService(cmd)
	if err != nil {
		return err
	}
	d, err := resolveDomain(cmd.Context(), svc, args[0])
	if err != nil {
		return err
	}
	current := d.Record(recordID)
	if current == nil {
		return fmt.Errorf("DNS record %s not found on %s", recordID, d.Name)
	}

	if yes, _ := cmd.Flags().GetBool("yes"); !yes {
		if !isTerminal() {
			return fmt.Errorf("refusing to delete DNS record %s without --yes", recordID)
		}
		ok, err := tui.Confirm(
			fmt.Sprintf("Delete %s record %s from %s?", current.Type, current.Name, d.Name),
			current.Value, "Delete")
		if errors.Is(err, tui.ErrAborted) || (err == nil && !ok) {
			fmt.Fprintln(cmd.ErrOrStderr(), "Deletion cancelled.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	if _, err := svc.DeleteRecord(cmd.Context(), d.ID, recordID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted record %s\n", describeRecord(*current))
	return nil
}

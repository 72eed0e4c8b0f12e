package dns

import (
	"fmt"

	"nathanbeddoewebdev/opsdeck/internal/dns/views"
	"nathanbeddoewebdev/opsdeck/internal/form"

	"github.com/spf13/cobra"
)

// UpdateCommand returns the "domain dns update" subcommand.
func UpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <domain> <record-id>",
		Short: "Update a DNS record",
		Long: `Update an existing DNS record. Only the flags given are changed.

Examples:
  opsdeck domain dns update example.com rec-1a2b3c4d --value 5.6.7.8
  opsdeck domain dns update example.com rec-1a2b3c4d --ttl 300`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         runUpdate,
	}

	addRecordFlags(cmd)

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
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

	seed := views.FromRecord(*current)
	f := views.NewRecordForm()
	f.Open(form.ModeEdit, recordID, seed)
	changed, err := applyRecordFlags(cmd, f)
	if err != nil {
		return err
	}
	if changed == 0 {
		return fmt.Errorf("nothing to update: pass at least one of --type, --name, --value or --ttl")
	}
	draft, err := f.Submit()
	if err != nil {
		return err
	}

	updated, err := svc.UpdateRecord(cmd.Context(), d.ID, recordID, draft.ToUpdate(seed))
	if err != nil {
		return err
	}

	if r := updated.Record(recordID); r != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated record %s\n", describeRecord(*r))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated record %s\n", recordID)
	}
	return nil
}

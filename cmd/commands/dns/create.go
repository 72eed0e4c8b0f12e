package dns

import (
	"fmt"

	"nathanbeddoewebdev/opsdeck/internal/dns/domain"
	"nathanbeddoewebdev/opsdeck/internal/dns/views"
	"nathanbeddoewebdev/opsdeck/internal/form"

	"github.com/spf13/cobra"
)

// AddCommand returns the "domain dns add" subcommand.
func AddCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "add <domain>",
		Aliases: []string{"create"},
		Short:   "Add a DNS record",
		Long: `Add a DNS record to the given domain.

Examples:
  opsdeck domain dns add example.com --type A --name www --value 1.2.3.4
  opsdeck domain dns add example.com --type MX --value "10 mail.example.com"
  opsdeck domain dns add example.com --type TXT --name _dmarc --value "v=DMARC1; p=none" --ttl 300`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runAdd,
	}

	addRecordFlags(cmd)
	cmd.MarkFlagRequired("value")

	return cmd
}

// addRecordFlags registers one flag per record form field.
func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().String("type", "", "Record type (A, CNAME, MX, TXT, NS, AAAA; default A)")
	cmd.Flags().String("name", "", "Record name, @ for the apex (default @)")
	cmd.Flags().String("value", "", "Record value (address, hostname or text)")
	cmd.Flags().String("ttl", "", "Time-to-live in seconds (default 3600)")
}

// applyRecordFlags copies every record flag the user set into f.
func applyRecordFlags(cmd *cobra.Command, f *form.Model[views.RecordDraft]) (changed int, err error) {
	for _, field := range views.RecordFields() {
		if !cmd.Flags().Changed(field.Key) {
			continue
		}
		v, _ := cmd.Flags().GetString(field.Key)
		if err := f.Set(field.Key, v); err != nil {
			return changed, err
		}
		changed++
	}
	return changed, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	svc, err := recordService(cmd)
	if err != nil {
		return err
	}
	d, err := resolveDomain(cmd.Context(), svc, args[0])
	if err != nil {
		return err
	}

	f := views.NewRecordForm()
	f.Open(form.ModeCreate, "", views.NewRecordDraft())
	if _, err := applyRecordFlags(cmd, f); err != nil {
		return err
	}
	draft, err := f.Submit()
	if err != nil {
		return err
	}

	updated, err := svc.AddRecord(cmd.Context(), d.ID, draft.ToOpts())
	if err != nil {
		return err
	}

	if r := findRecord(updated, draft.Type, draft.Name); r != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Added record %s to %s\n", describeRecord(*r), updated.Name)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s record %s to %s\n", draft.Type, draft.Name, updated.Name)
	}
	return nil
}

// findRecord returns the newest record matching typ and name.
func findRecord(d *domain.Domain, typ domain.RecordType, name string) *domain.Record {
	for i := len(d.DNSRecords) - 1; i >= 0; i-- {
		if d.DNSRecords[i].Type == typ && d.DNSRecords[i].Name == name {
			return &d.DNSRecords[i]
		}
	}
	return nil
}

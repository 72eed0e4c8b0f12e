package dns

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/dns/views"

	"github.com/spf13/cobra"
)

// ListCommand returns the "domain dns list" subcommand.
func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <domain>",
		Short: "List DNS records for a domain",
		Long: `List all DNS records for the given domain.

Examples:
  opsdeck domain dns list example.com
  opsdeck domain dns list example.com --type A`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runList,
	}

	cmd.Flags().String("type", "", "Filter records by type (A, AAAA, CNAME, MX, TXT, NS)")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	svc, err := recordService(cmd)
	if err != nil {
		return err
	}
	d, err := resolveDomain(cmd.Context(), svc, args[0])
	if err != nil {
		return err
	}

	list := views.NewRecordList()
	list.Load(d.DNSRecords)
	if typ, _ := cmd.Flags().GetString("type"); typ != "" {
		if err := list.SetFacet("type", strings.ToUpper(typ)); err != nil {
			return err
		}
	}
	records := list.Visible()

	if output == "json" {
		return printJSON(cmd, records)
	}
	if len(records) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No DNS records found for %s.\n", d.Name)
		return nil
	}

	w := newTabWriter(cmd)
	headers := list.Headers()
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	fmt.Fprintln(w, underline(headers))
	for _, r := range records {
		fmt.Fprintln(w, strings.Join(list.Row(r), "\t"))
	}
	return w.Flush()
}

package dns

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/opsdeck/internal/dns/domain"

	"github.com/spf13/cobra"
)

func newTabWriter(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
}

func underline(headers []string) string {
	parts := make([]string, len(headers))
	for i, h := range headers {
		parts[i] = strings.Repeat("-", len(h))
	}
	return strings.Join(parts, "\t")
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func describeRecord(r domain.Record) string {
	return fmt.Sprintf("%s (%s %s -> %s)", r.ID, r.Type, r.Name, r.Value)
}

package crud

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"nathanbeddoewebdev/opsdeck/internal/detail"

	"github.com/spf13/cobra"
)

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
}

func outputFormat(cmd *cobra.Command) (string, error) {
	output, _ := cmd.Flags().GetString("output")
	switch output {
	case "", "table":
		return "table", nil
	case "json":
		return "json", nil
	default:
		return "", fmt.Errorf("unsupported output format %q", output)
	}
}

// printJSON encodes v as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable writes headers, an underline row and rows through a tabwriter.
func printTable(cmd *cobra.Command, headers []string, rows [][]string) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)

	underline := make([]string, len(headers))
	for i, h := range headers {
		underline[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	fmt.Fprintln(w, strings.Join(underline, "\t"))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			if c == "" {
				c = "-"
			}
			cells[i] = c
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
}

// printDetail prints a vertical key-value table. Section rows become
// headings.
func printDetail(cmd *cobra.Command, rows []detail.Row) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, r := range rows {
		if r.IsSection() {
			fmt.Fprintf(w, "\n%s\n", r.Value)
			continue
		}
		value := r.Value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(w, "  %s:\t%s\n", r.Label, value)
	}
	w.Flush()
}

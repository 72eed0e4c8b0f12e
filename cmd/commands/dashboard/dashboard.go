// Package dashboard implements the "dashboard" command.
package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/opsdeck/cmd/commands/crud"
	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/dashboard"
	"nathanbeddoewebdev/opsdeck/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// NewCommand returns the "dashboard" command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show an overview of the whole inventory",
		Long: "Show record counts per section, domains close to expiry, storage usage\n" +
			"and mailboxes near their quota.\n\n" +
			"In a terminal this opens the interactive dashboard (press r to refresh).\n" +
			"Otherwise, or with -o, a one-off summary is printed.",
		Args:         cobra.NoArgs,
		Annotations:  map[string]string{crud.AnnotationTUI: "true"},
		SilenceUsage: true,
		RunE:         run,
	}

	cmd.Flags().StringP("output", "o", "", "Print the summary instead: text or json")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	a, err := app.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" && isTerminal() {
		return tui.RunDashboard(cmd.Context(), a.Dashboard(), a.Origin)
	}

	summary := dashboard.Load(cmd.Context(), a.Dashboard(), time.Now())
	switch output {
	case "", "text":
		return printSummary(cmd.OutOrStdout(), summary)
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	default:
		return fmt.Errorf("unsupported output format %q", output)
	}
}

func printSummary(out io.Writer, s dashboard.Summary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "SECTION\tTOTAL\tSTATUS")
	fmt.Fprintln(w, "-------\t-----\t------")
	for _, c := range s.Cards {
		if c.Err != "" {
			fmt.Fprintf(w, "%s\t-\t%s\n", c.Title, c.Err)
			continue
		}
		var parts []string
		for _, sc := range c.ByStatus {
			if sc.Count > 0 {
				parts = append(parts, fmt.Sprintf("%s %d", sc.Status, sc.Count))
			}
		}
		status := strings.Join(parts, ", ")
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", c.Title, c.Total, status)
	}

	fmt.Fprintf(w, "\nDomains expiring within %d days:\n", dashboard.ExpiryWindow)
	if len(s.Expiring) == 0 {
		fmt.Fprintln(w, "  None.")
	}
	for _, d := range s.Expiring {
		fmt.Fprintf(w, "  %s\t%s\n", d.Name, d.Expiry.Label())
	}

	fmt.Fprintf(w, "\nMailboxes at %d%% of quota or more:\n", dashboard.QuotaHotPercent)
	if len(s.QuotaHot) == 0 {
		fmt.Fprintln(w, "  None.")
	}
	for _, u := range s.QuotaHot {
		fmt.Fprintf(w, "  %s\t%d%%\n", u.Name, u.Percent)
	}

	fmt.Fprintln(w, "\nStorage usage:")
	if len(s.Storage) == 0 {
		fmt.Fprintln(w, "  No buckets.")
	}
	for _, u := range s.Storage {
		fmt.Fprintf(w, "  %s\t%d%%\n", u.Name, u.Percent)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	if n := s.Failed(); n > 0 {
		return fmt.Errorf("%d of %d sections failed to load", n, len(s.Cards))
	}
	return nil
}

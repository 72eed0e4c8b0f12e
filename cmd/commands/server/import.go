package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/auth"
	"nathanbeddoewebdev/opsdeck/internal/server/domain"
	"nathanbeddoewebdev/opsdeck/internal/server/importer"
	"nathanbeddoewebdev/opsdeck/internal/tui"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Overridden in tests.
var (
	authStore  = auth.DefaultStore
	newSource  = func(token string) importer.Source { return importer.NewHetzner(app.Version, hcloud.WithToken(token)) }
	isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
)

// ImportCommand returns "server import <provider>".
func ImportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <provider>",
		Short: "Import servers from a cloud provider",
		Long: `Copy a cloud provider's servers into the inventory. Servers whose name or
IP address is already in the inventory are skipped, so the import can be
repeated. Supported providers: hetzner.

The provider token comes from $HCLOUD_TOKEN or "opsdeck auth login hetzner".

Examples:
  opsdeck server import hetzner --team Platform --dry-run
  opsdeck server import hetzner --team Platform --category staging --tag cloud`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         runImport,
	}

	cmd.Flags().String("team", "", "Responsible team for imported servers (required)")
	cmd.Flags().String("category", string(domain.CategoryProduction), "Category for imported servers")
	cmd.Flags().StringSlice("tag", nil, "Extra tag for imported servers (repeatable)")
	cmd.Flags().Bool("dry-run", false, "Show what would be imported without creating anything")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	provider, ok := auth.LookupProvider(args[0])
	if !ok {
		return fmt.Errorf("unknown provider %q (supported: hetzner)", args[0])
	}

	team, _ := cmd.Flags().GetString("team")
	categoryRaw, _ := cmd.Flags().GetString("category")
	tags, _ := cmd.Flags().GetStringSlice("tag")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}
	category, err := domain.ParseCategory(categoryRaw)
	if err != nil {
		return err
	}

	a, err := app.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	token, err := auth.Token(authStore(), provider)
	if errors.Is(err, auth.ErrTokenNotFound) {
		return fmt.Errorf("no %s token: set $%s or run: opsdeck auth login %s", provider.DisplayName, provider.EnvVar, provider.Name)
	}
	if err != nil {
		return err
	}

	opts := importer.Options{Category: category, Team: team, Tags: tags, DryRun: dryRun}
	var res *importer.Result
	action := func(ctx context.Context) error {
		res, err = importer.Run(ctx, newSource(token), a.Servers, opts)
		return err
	}
	if isTerminal() {
		err = tui.Spin(cmd.Context(), cmd.ErrOrStderr(), "Importing servers from "+provider.DisplayName+"...", action)
	} else {
		err = action(cmd.Context())
	}
	if err != nil {
		return err
	}

	if output == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printImport(cmd, provider.DisplayName, res, dryRun)
	return nil
}

func printImport(cmd *cobra.Command, source string, res *importer.Result, dryRun bool) {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)

	if dryRun && len(res.Planned) > 0 {
		fmt.Fprintln(w, "NAME\tIP ADDRESS\tSTATUS\tLOCATION")
		for _, p := range res.Planned {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Name, p.IPAddress, p.Status, p.Location)
		}
	}
	if !dryRun && len(res.Created) > 0 {
		fmt.Fprintln(w, "ID\tNAME\tIP ADDRESS\tSTATUS")
		for _, s := range res.Created {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID, s.Name, s.IPAddress, s.Status)
		}
	}
	w.Flush()

	for _, s := range res.Skipped {
		fmt.Fprintf(out, "Skipped %s: %s\n", s.Name, s.Reason)
	}

	if dryRun {
		fmt.Fprintf(out, "Would import %d server(s) from %s, skipping %d.\n", len(res.Planned), source, len(res.Skipped))
		return
	}
	fmt.Fprintf(out, "Imported %d server(s) from %s, skipped %d.\n", len(res.Created), source, len(res.Skipped))
}

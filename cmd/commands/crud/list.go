package crud

import (
	"context"
	"fmt"
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/resource"

	"github.com/spf13/cobra"
)

// ListCommand returns the "list" command. Filter flags are sent to the API;
// --search is applied locally like the browser's search box.
func ListCommand[T domain.Entity, C resource.Input, U resource.Patch, D any](s Spec[T, C, U, D]) *cobra.Command {
	def := s.Area
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + def.Nouns.Plural,
		Long: "List " + def.Nouns.Plural + ".\n\n" +
			"Examples:\n" +
			"  opsdeck " + s.Use + " list\n" +
			"  opsdeck " + s.Use + " list --search prod -o json",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, s)
		},
	}

	for _, f := range def.Filters {
		cmd.Flags().String(f.Name, "", f.Usage)
	}
	cmd.Flags().String("search", "", "Only show "+def.Nouns.Plural+" containing this text")
	addOutputFlag(cmd)

	return cmd
}

func runList[T domain.Entity, C resource.Input, U resource.Patch, D any](cmd *cobra.Command, s Spec[T, C, U, D]) error {
	def := s.Area
	output, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	a, err := app.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	values := make(map[string]string)
	for _, f := range def.Filters {
		if v, _ := cmd.Flags().GetString(f.Name); strings.TrimSpace(v) != "" {
			values[f.Name] = strings.TrimSpace(v)
		}
	}
	filter, err := def.Filter(values)
	if err != nil {
		return err
	}

	var items []T
	err = run(cmd, "Loading "+def.Nouns.Plural+"...", func(ctx context.Context) error {
		var err error
		items, err = s.Service(a).List(ctx, filter)
		return err
	})
	if err != nil {
		return err
	}

	list := def.NewList()
	list.Load(items)
	search, _ := cmd.Flags().GetString("search")
	list.SetSearch(search)
	visible := list.Visible()

	if output == "json" {
		return printJSON(cmd, visible)
	}

	if len(visible) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No %s found.\n", def.Nouns.Plural)
		return nil
	}
	rows := make([][]string, len(visible))
	for i, item := range visible {
		rows[i] = list.Row(item)
	}
	printTable(cmd, list.Headers(), rows)
	return nil
}

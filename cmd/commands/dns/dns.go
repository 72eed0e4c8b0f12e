// Package dns provides the "domain" command and its nested "dns" record
// commands.
package dns

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/opsdeck/cmd/commands/crud"
	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/dns/domain"
	"nathanbeddoewebdev/opsdeck/internal/dns/services"
	dnstui "nathanbeddoewebdev/opsdeck/internal/dns/tui"
	"nathanbeddoewebdev/opsdeck/internal/dns/views"
	shared "nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/tui/browse"

	"github.com/spf13/cobra"
)

// NewCommand returns the "domain" command: the shared CRUD commands plus
// "domain dns" for records.
func NewCommand() *cobra.Command {
	cmd := crud.NewCommand(crud.Spec[domain.Domain, domain.CreateOpts, domain.UpdateOpts, views.Draft]{
		Use:     "domain",
		Aliases: []string{"domains"},
		Short:   "Manage domains, their DNS records and SSL status",
		Area:    views.Area(),
		Service: func(a *app.App) browse.Service[domain.Domain, domain.CreateOpts, domain.UpdateOpts] {
			return a.Domains
		},
		Extras: func(ctx context.Context, a *app.App) []browse.Extra[domain.Domain] {
			return []browse.Extra[domain.Domain]{{
				Key:  "R",
				Desc: "records",
				Open: dnstui.Screen(ctx, a.Domains, a.Origin),
			}}
		},
	})

	cmd.AddCommand(DNSCommand())
	return cmd
}

// DNSCommand returns "domain dns" with its record subcommands.
func DNSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dns",
		Short: "Manage DNS records of a domain",
		Long: `List, add, update and delete the DNS records of one domain.

The domain may be given by ID or by name.`,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(AddCommand())
	cmd.AddCommand(UpdateCommand())
	cmd.AddCommand(DeleteCommand())

	return cmd
}

func recordService(cmd *cobra.Command) (*services.Service, error) {
	a, err := app.FromContext(cmd.Context())
	if err != nil {
		return nil, err
	}
	return a.Domains, nil
}

// resolveDomain finds a domain by ID, falling back to an exact,
// case-insensitive name match.
func resolveDomain(ctx context.Context, svc *services.Service, ref string) (*domain.Domain, error) {
	d, err := svc.Get(ctx, ref)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	all, listErr := svc.List(ctx, nil)
	if listErr != nil {
		return nil, listErr
	}
	for i := range all {
		if strings.EqualFold(all[i].Name, ref) {
			return &all[i], nil
		}
	}
	return nil, fmt.Errorf("domain %q not found", ref)
}

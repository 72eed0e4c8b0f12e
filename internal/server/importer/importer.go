// Package importer copies servers from a cloud provider into the inventory.
// Servers already in the inventory, matched by name or IP address, are
// skipped, so an import can be repeated safely.
package importer

import (
	"context"
	"fmt"
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/resource"
	server "nathanbeddoewebdev/opsdeck/internal/server/domain"
)

// Source lists a provider's servers as inventory records.
type Source interface {
	Name() string
	Servers(ctx context.Context) ([]server.CreateOpts, error)
}

// Inventory is the part of the server service the importer needs.
type Inventory interface {
	List(ctx context.Context, filter resource.Filter) ([]server.Server, error)
	Create(ctx context.Context, opts server.CreateOpts) (*server.Server, error)
}

// Options fill in what a provider cannot know.
type Options struct {
	Category server.Category
	Team     string
	Tags     []string
	// DryRun plans the import without creating anything.
	DryRun bool
}

// Skip is a provider server that was not imported.
type Skip struct {
	Name   string
	Reason string
}

// Result reports what an import did. With DryRun, Planned holds what
// would have been created and Created is empty.
type Result struct {
	Created []server.Server
	Planned []server.CreateOpts
	Skipped []Skip
}

// Run imports every server from src that inv does not already hold.
// A failed create is recorded as a Skip and the import carries on.
func Run(ctx context.Context, src Source, inv Inventory, opts Options) (*Result, error) {
	found, err := src.Servers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s servers: %w", src.Name(), err)
	}
	existing, err := inv.List(ctx, nil)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(existing))
	ips := make(map[string]string, len(existing))
	for _, s := range existing {
		names[strings.ToLower(s.Name)] = s.ID
		if s.IPAddress != "" {
			ips[s.IPAddress] = s.ID
		}
	}

	res := &Result{}
	for _, c := range found {
		if id, ok := names[strings.ToLower(c.Name)]; ok {
			res.Skipped = append(res.Skipped, Skip{Name: c.Name, Reason: "name already in inventory as " + id})
			continue
		}
		if id, ok := ips[c.IPAddress]; ok && c.IPAddress != "" {
			res.Skipped = append(res.Skipped, Skip{Name: c.Name, Reason: "IP address already in inventory as " + id})
			continue
		}

		applyDefaults(&c, opts)
		if err := c.Validate(); err != nil {
			res.Skipped = append(res.Skipped, Skip{Name: c.Name, Reason: err.Error()})
			continue
		}

		names[strings.ToLower(c.Name)] = "(this import)"
		if c.IPAddress != "" {
			ips[c.IPAddress] = "(this import)"
		}

		if opts.DryRun {
			res.Planned = append(res.Planned, c)
			continue
		}
		created, err := inv.Create(ctx, c)
		if err != nil {
			res.Skipped = append(res.Skipped, Skip{Name: c.Name, Reason: domain.Message(err)})
			continue
		}
		res.Created = append(res.Created, *created)
	}
	return res, nil
}

func applyDefaults(c *server.CreateOpts, opts Options) {
	if c.Category == "" {
		c.Category = opts.Category
	}
	if c.ResponsibleTeam == "" {
		c.ResponsibleTeam = opts.Team
	}
	c.Tags = server.NormalizeTags(append(c.Tags, opts.Tags...))
}

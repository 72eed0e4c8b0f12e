package importer

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"nathanbeddoewebdev/opsdeck/internal/retry"
	server "nathanbeddoewebdev/opsdeck/internal/server/domain"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// Hetzner lists servers from the Hetzner Cloud API.
type Hetzner struct {
	client *hcloud.Client
	retry  retry.Config
}

// NewHetzner creates a Hetzner source with the given hcloud client options.
// Default options (application name) are applied first; callers can override them.
func NewHetzner(version string, opts ...hcloud.ClientOption) *Hetzner {
	defaults := []hcloud.ClientOption{
		hcloud.WithApplication("opsdeck", version),
	}
	return &Hetzner{
		client: hcloud.NewClient(append(defaults, opts...)...),
		retry:  retry.DefaultConfig(),
	}
}

// Name identifies the provider in import summaries.
func (h *Hetzner) Name() string { return "Hetzner" }

// Servers retrieves all servers from the Hetzner Cloud API. Rate limits,
// provider-side failures and timeouts are retried.
func (h *Hetzner) Servers(ctx context.Context) ([]server.CreateOpts, error) {
	hzServers, err := retry.Do(ctx, h.retry, transient, func() ([]*hcloud.Server, error) {
		return h.client.Server.All(ctx)
	})
	if err != nil {
		return nil, err
	}

	out := make([]server.CreateOpts, 0, len(hzServers))
	for _, s := range hzServers {
		out = append(out, fromHetzner(s))
	}
	return out, nil
}

func transient(err error) bool {
	return hcloud.IsError(err, hcloud.ErrorCodeRateLimitExceeded) ||
		hcloud.IsError(err, hcloud.ErrorCodeServiceError) ||
		retry.IsRetryable(err)
}

// fromHetzner converts an hcloud.Server to inventory fields. Category and
// team are left for the caller.
func fromHetzner(s *hcloud.Server) server.CreateOpts {
	opts := server.CreateOpts{
		Name:     s.Name,
		Provider: "Hetzner",
		Status:   hetznerStatus(s.Status),
		OS:       "unknown",
		Tags:     []string{"hetzner", "hetzner-id=" + strconv.FormatInt(s.ID, 10)},
	}

	switch {
	case !s.PublicNet.IPv4.IsUnspecified():
		opts.IPAddress = s.PublicNet.IPv4.IP.String()
	case !s.PublicNet.IPv6.IsUnspecified():
		opts.IPAddress = s.PublicNet.IPv6.IP.String()
	case len(s.PrivateNet) > 0 && s.PrivateNet[0].IP != nil:
		opts.IPAddress = s.PrivateNet[0].IP.String()
	}

	if s.ServerType != nil {
		opts.Specs = server.Specs{
			CPU:     fmt.Sprintf("%d vCPU", s.ServerType.Cores),
			RAM:     fmt.Sprintf("%g GB", s.ServerType.Memory),
			Storage: fmt.Sprintf("%d GB", s.ServerType.Disk),
		}
	}

	if s.Image != nil {
		opts.OS = s.Image.Description
		if opts.OS == "" {
			opts.OS = s.Image.Name
		}
	}

	loc := s.Location
	if loc == nil && s.Datacenter != nil {
		loc = s.Datacenter.Location
	}
	if loc != nil {
		opts.Location = loc.City
		if opts.Location == "" {
			opts.Location = loc.Name
		}
	}

	keys := make([]string, 0, len(s.Labels))
	for k := range s.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		opts.Tags = append(opts.Tags, k+"="+s.Labels[k])
	}

	return opts
}

func hetznerStatus(st hcloud.ServerStatus) server.Status {
	switch st {
	case hcloud.ServerStatusRunning:
		return server.StatusOnline
	case hcloud.ServerStatusOff:
		return server.StatusOffline
	case hcloud.ServerStatusUnknown:
		return server.StatusWarning
	default:
		return server.StatusMaintenance
	}
}

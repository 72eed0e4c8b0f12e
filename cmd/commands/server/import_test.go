package server

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/app/apptest"
	"nathanbeddoewebdev/opsdeck/internal/auth"
	"nathanbeddoewebdev/opsdeck/internal/server/domain"
	"nathanbeddoewebdev/opsdeck/internal/server/importer"
)

type stubSource struct {
	servers []domain.CreateOpts
}

func (s *stubSource) Name() string { return "Hetzner" }

func (s *stubSource) Servers(ctx context.Context) ([]domain.CreateOpts, error) {
	return s.servers, nil
}

func cloudServer(name, ip string) domain.CreateOpts {
	return domain.CreateOpts{
		Name:      name,
		IPAddress: ip,
		OS:        "Ubuntu 24.04",
		Specs:     domain.Specs{CPU: "2 vCPU", RAM: "4 GB", Storage: "40 GB"},
		Location:  "Falkenstein",
		Provider:  "Hetzner",
		Status:    domain.StatusOnline,
		Tags:      []string{"hetzner"},
	}
}

// stubImport wires a memory token store and a fixed source, returning the
// token the source was built with.
func stubImport(t *testing.T, token string, servers ...domain.CreateOpts) *string {
	t.Helper()
	t.Setenv("HCLOUD_TOKEN", "")

	store := auth.NewMemoryStore()
	if token != "" {
		_ = store.SetToken("hetzner", token)
	}
	var used string
	prevStore, prevSource, prevTerm := authStore, newSource, isTerminal
	authStore = func() auth.Store { return store }
	newSource = func(tok string) importer.Source {
		used = tok
		return &stubSource{servers: servers}
	}
	isTerminal = func() bool { return false }
	t.Cleanup(func() { authStore, newSource, isTerminal = prevStore, prevSource, prevTerm })
	return &used
}

func execImport(t *testing.T, a *app.App, args ...string) (string, string, error) {
	t.Helper()
	return apptest.Execute(t, a, NewCommand(), append([]string{"import"}, args...)...)
}

func TestImport_CreatesNewServers(t *testing.T) {
	a := apptest.New(t)
	used := stubImport(t, "stored-token",
		cloudServer("hz-web-01", "203.0.113.10"),
		cloudServer("NCC-Db-Prod-01", "203.0.113.11"),
	)

	out, _, err := execImport(t, a, "hetzner", "--team", "Platform", "--tag", "cloud")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *used != "stored-token" {
		t.Errorf("source built with token %q", *used)
	}
	for _, want := range []string{
		"hz-web-01",
		"Skipped NCC-Db-Prod-01: name already in inventory as srv-002",
		"Imported 1 server(s) from Hetzner Cloud, skipped 1.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	servers, err := a.Servers.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	var imported *domain.Server
	for i := range servers {
		if servers[i].Name == "hz-web-01" {
			imported = &servers[i]
		}
	}
	if imported == nil {
		t.Fatal("imported server not found in inventory")
	}
	if imported.ResponsibleTeam != "Platform" || imported.Category != domain.CategoryProduction {
		t.Errorf("defaults not applied: %+v", imported)
	}
	if strings.Join(imported.Tags, ",") != "hetzner,cloud" {
		t.Errorf("Tags = %v", imported.Tags)
	}
}

func TestImport_DryRunJSON(t *testing.T) {
	a := apptest.New(t)
	stubImport(t, "stored-token", cloudServer("hz-web-01", "203.0.113.10"))

	out, _, err := execImport(t, a, "hetzner", "--team", "Platform", "--dry-run", "-o", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var res importer.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(res.Planned) != 1 || len(res.Created) != 0 {
		t.Errorf("unexpected result: %+v", res)
	}

	servers, _ := a.Servers.List(context.Background(), nil)
	if len(servers) != 5 {
		t.Errorf("dry run changed the inventory: %d servers", len(servers))
	}
}

func TestImport_EnvTokenWins(t *testing.T) {
	a := apptest.New(t)
	used := stubImport(t, "stored-token")
	t.Setenv("HCLOUD_TOKEN", "env-token")

	if _, _, err := execImport(t, a, "hetzner", "--team", "Platform"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *used != "env-token" {
		t.Errorf("source built with token %q, want env-token", *used)
	}
}

func TestImport_Errors(t *testing.T) {
	a := apptest.New(t)
	stubImport(t, "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no token", []string{"hetzner", "--team", "Platform"}, "opsdeck auth login hetzner"},
		{"unknown provider", []string{"aws", "--team", "Platform"}, `unknown provider "aws"`},
		{"missing team", []string{"hetzner"}, `required flag(s) "team" not set`},
		{"bad category", []string{"hetzner", "--team", "Platform", "--category", "qa"}, "qa"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execImport(t, a, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

package devserver

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func getJSON(t *testing.T, url string, dst any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestNewHandler_DefaultSeed(t *testing.T) {
	h, err := newHandler("", false, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	srv := httptest.NewServer(h)
	defer srv.Close()

	var servers []map[string]any
	getJSON(t, srv.URL+"/api/v1/servers", &servers)
	if len(servers) != 5 {
		t.Errorf("expected 5 seeded servers, got %d", len(servers))
	}
}

func TestNewHandler_Empty(t *testing.T) {
	h, err := newHandler("", true, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	srv := httptest.NewServer(h)
	defer srv.Close()

	var domains []map[string]any
	getJSON(t, srv.URL+"/api/v1/domains", &domains)
	if len(domains) != 0 {
		t.Errorf("expected no domains, got %d", len(domains))
	}
}

func TestNewHandler_SeedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	seed := `repositories:
  - id: repo-001
    name: infra
    url: https://git.example.com/ops/infra
    provider: GitLab
    language: HCL
    visibility: private
    ownerTeam: Platform
    ciStatus: passing
    branches: 3
    openIssues: 0
`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	h, err := newHandler(path, false, zerolog.Nop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	srv := httptest.NewServer(h)
	defer srv.Close()

	var repos []map[string]any
	getJSON(t, srv.URL+"/api/v1/repositories", &repos)
	if len(repos) != 1 || repos[0]["name"] != "infra" {
		t.Errorf("unexpected repositories: %v", repos)
	}
}

func TestNewHandler_MissingSeed(t *testing.T) {
	if _, err := newHandler(filepath.Join(t.TempDir(), "nope.yaml"), false, zerolog.Nop()); err == nil {
		t.Error("expected error for missing seed file")
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, ln, http.NotFoundHandler(), zerolog.Nop()) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

package auth

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"nathanbeddoewebdev/opsdeck/internal/auth"
)

func setupStore(t *testing.T) *auth.MemoryStore {
	t.Helper()
	mem := auth.NewMemoryStore()
	prevStore, prevRead := store, readPassword
	store = func() auth.Store { return mem }
	readPassword = func() ([]byte, error) { return nil, errors.New("no terminal") }
	t.Cleanup(func() { store, readPassword = prevStore, prevRead })
	t.Setenv("HCLOUD_TOKEN", "")
	return mem
}

func execAuth(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLogin_WithFlag(t *testing.T) {
	mem := setupStore(t)

	out, err := execAuth(t, "login", "Hetzner", "--token", " secret ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Saved token for Hetzner Cloud") {
		t.Errorf("unexpected output: %s", out)
	}
	if got, _ := mem.GetToken("hetzner"); got != "secret" {
		t.Errorf("stored token = %q", got)
	}
}

func TestLogin_Prompt(t *testing.T) {
	mem := setupStore(t)
	readPassword = func() ([]byte, error) { return []byte("typed\n"), nil }

	out, err := execAuth(t, "login", "hetzner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Enter API token:") {
		t.Errorf("expected prompt, got: %s", out)
	}
	if got, _ := mem.GetToken("hetzner"); got != "typed" {
		t.Errorf("stored token = %q", got)
	}
}

func TestLogin_Errors(t *testing.T) {
	setupStore(t)

	if _, err := execAuth(t, "login", "aws", "--token", "x"); err == nil || !strings.Contains(err.Error(), "supported: hetzner") {
		t.Errorf("expected unknown provider error, got %v", err)
	}
	if _, err := execAuth(t, "login", "hetzner"); err == nil {
		t.Error("expected error when the prompt cannot be read")
	}
}

func TestStatusAndLogout(t *testing.T) {
	mem := setupStore(t)

	out, _ := execAuth(t, "status")
	if !strings.Contains(out, "hetzner:") || !strings.Contains(out, "not logged in") {
		t.Errorf("unexpected status: %s", out)
	}

	_ = mem.SetToken("hetzner", "secret")
	out, _ = execAuth(t, "status")
	if strings.Contains(out, "not logged in") || !strings.Contains(out, "logged in") {
		t.Errorf("unexpected status: %s", out)
	}

	t.Setenv("HCLOUD_TOKEN", "env")
	out, _ = execAuth(t, "status")
	if !strings.Contains(out, "from $HCLOUD_TOKEN") {
		t.Errorf("expected env source, got: %s", out)
	}

	out, err := execAuth(t, "logout", "hetzner")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "Removed token for Hetzner Cloud") {
		t.Errorf("unexpected output: %s", out)
	}
	out, _ = execAuth(t, "logout", "hetzner")
	if !strings.Contains(out, "No token stored") {
		t.Errorf("unexpected output: %s", out)
	}
}

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/opsdeck/internal/auditlog"
	"nathanbeddoewebdev/opsdeck/internal/config"
	"nathanbeddoewebdev/opsdeck/internal/database"
	"nathanbeddoewebdev/opsdeck/internal/devserver"
	"nathanbeddoewebdev/opsdeck/internal/domain"

	"github.com/spf13/cobra"
)

// isolate points the config file and database at a temp dir and starts a
// seeded dev server, returning its API URL.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	config.SetPath(filepath.Join(dir, "config.json"))
	t.Cleanup(config.ResetPath)
	database.SetPath(filepath.Join(dir, "opsdeck.db"))
	t.Cleanup(database.ResetPath)
	t.Setenv(config.EnvAPIURL, "")

	seed, err := devserver.DefaultSeed()
	if err != nil {
		t.Fatalf("failed to load seed: %v", err)
	}
	srv := httptest.NewServer(devserver.New(devserver.DefaultPrefix, devserver.WithSeed(seed)))
	t.Cleanup(srv.Close)
	return srv.URL + devserver.DefaultPrefix
}

func execRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root, closeApp := rootCmd()
	t.Cleanup(func() { _ = closeApp() })
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRoot_ServerList(t *testing.T) {
	url := isolate(t)

	out, err := execRoot(t, "--api-url", url, "--log-level", "disabled", "server", "list", "--status", "offline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "NCC-Test-Runner") {
		t.Errorf("expected offline server in output:\n%s", out)
	}
	if strings.Contains(out, "NCC-Db-Prod-01") {
		t.Errorf("online server should be filtered out:\n%s", out)
	}
}

func TestRoot_MutationIsAudited(t *testing.T) {
	url := isolate(t)

	_, err := execRoot(t, "--api-url", url, "--log-level", "disabled", "server", "delete", "srv-005", "--yes")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo, err := auditlog.Open()
	if err != nil {
		t.Fatalf("failed to open audit log: %v", err)
	}
	defer repo.Close()

	entries, err := repo.ListByKind(t.Context(), "server", 10)
	if err != nil {
		t.Fatalf("ListByKind failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 audit entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Operation != "delete" || e.ResourceID != "srv-005" || e.Outcome != auditlog.OutcomeSuccess {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.Source != "opsdeck server delete" {
		t.Errorf("Source = %q", e.Source)
	}
}

func TestRoot_AuditOff(t *testing.T) {
	url := isolate(t)
	if _, err := execRoot(t, "config", "set", "audit", "off"); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	if _, err := execRoot(t, "--api-url", url, "--log-level", "disabled", "server", "delete", "srv-004", "--yes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	repo, err := auditlog.Open()
	if err != nil {
		t.Fatalf("failed to open audit log: %v", err)
	}
	defer repo.Close()
	entries, err := repo.List(t.Context(), 10)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries with auditing off, got %d", len(entries))
	}
}

func TestRoot_StandaloneSkipsApp(t *testing.T) {
	isolate(t)

	// An unreachable API must not matter to config commands.
	out, err := execRoot(t, "--api-url", "http://127.0.0.1:1/api/v1", "config", "get", "timeout")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "not set") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestRoot_UnreachableAPI(t *testing.T) {
	isolate(t)

	_, err := execRoot(t, "--api-url", "http://127.0.0.1:1/api/v1", "--log-level", "disabled", "server", "list")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got := domain.Message(err); got != "Failed to load servers. Please check your connection." {
		t.Errorf("Message = %q", got)
	}
}

func TestAnnotated(t *testing.T) {
	parent := &cobra.Command{Use: "config", Annotations: map[string]string{"k": "true"}}
	child := &cobra.Command{Use: "get"}
	parent.AddCommand(child)
	other := &cobra.Command{Use: "server"}

	if !annotated(child, "k") {
		t.Error("child should inherit the parent's annotation")
	}
	if annotated(other, "k") {
		t.Error("unannotated command reported as annotated")
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	cause := fmt.Errorf("%w: status 429", domain.ErrRateLimited)
	printError(&buf, &domain.OpError{Kind: domain.ErrLoad, Message: "Failed to load servers. Please check your connection.", Err: cause})

	want := "Error: Failed to load servers. Please check your connection.\n  " + cause.Error() + "\n"
	if buf.String() != want {
		t.Errorf("printError = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	printError(&buf, errors.New("unknown flag: --bogus"))
	if buf.String() != "Error: unknown flag: --bogus\n" {
		t.Errorf("printError = %q", buf.String())
	}
}

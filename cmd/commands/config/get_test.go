package config

import (
	"strings"
	"testing"

	"nathanbeddoewebdev/opsdeck/internal/config"
)

func TestGet_NotSet(t *testing.T) {
	setupTestConfig(t)

	stdout, _ := execConfig(t, "get", "api-url")

	if !strings.Contains(stdout, "not set") {
		t.Errorf("expected 'not set', got: %s", stdout)
	}
}

func TestGet_AfterSet(t *testing.T) {
	path := setupTestConfig(t)
	cfg := &config.Config{APIURL: "https://ops.example.com/api/v1"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, _ := execConfig(t, "get", "api-url")

	if strings.TrimSpace(stdout) != "https://ops.example.com/api/v1" {
		t.Errorf("expected api url, got: %q", stdout)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	setupTestConfig(t)

	_, stderr := execConfig(t, "get", "bogus-key")

	if !strings.Contains(stderr, "unknown configuration key") {
		t.Errorf("expected 'unknown configuration key' error, got: %s", stderr)
	}
}

func TestList(t *testing.T) {
	path := setupTestConfig(t)
	cfg := &config.Config{Timeout: 10, Audit: "off"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	stdout, stderr := execConfig(t, "list")

	if stderr != "" {
		t.Errorf("unexpected stderr: %s", stderr)
	}
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) != len(config.Keys) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(config.Keys), len(lines), stdout)
	}
	for _, want := range []string{"timeout:", "10", "audit:", "off", "(not set)"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

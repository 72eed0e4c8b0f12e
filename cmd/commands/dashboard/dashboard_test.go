package dashboard

import (
	"encoding/json"
	"strings"
	"testing"

	"nathanbeddoewebdev/opsdeck/internal/app"
	"nathanbeddoewebdev/opsdeck/internal/app/apptest"
	"nathanbeddoewebdev/opsdeck/internal/dashboard"
)

func execDashboard(t *testing.T, a *app.App, args ...string) (string, error) {
	t.Helper()
	prev := isTerminal
	isTerminal = func() bool { return false }
	t.Cleanup(func() { isTerminal = prev })
	out, _, err := apptest.Execute(t, a, NewCommand(), args...)
	return out, err
}

func TestDashboard_Text(t *testing.T) {
	a := apptest.New(t)

	out, err := execDashboard(t, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"SECTION",
		"Servers",
		"online 2",
		"warning 1",
		"maintenance 1",
		"offline 1",
		"Domains expiring within 30 days:",
		"Storage usage:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestDashboard_JSON(t *testing.T) {
	a := apptest.New(t)

	out, err := execDashboard(t, a, "-o", "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var s dashboard.Summary
	if err := json.Unmarshal([]byte(out), &s); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(s.Cards) != 5 {
		t.Fatalf("expected 5 cards, got %d", len(s.Cards))
	}
	if s.Cards[0].Kind != "server" || s.Cards[0].Total != 5 {
		t.Errorf("unexpected server card: %+v", s.Cards[0])
	}
}

func TestDashboard_BadOutput(t *testing.T) {
	a := apptest.New(t)

	if _, err := execDashboard(t, a, "-o", "yaml"); err == nil {
		t.Error("expected error for unsupported output")
	}
}

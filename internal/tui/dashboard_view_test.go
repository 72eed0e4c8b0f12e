package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"nathanbeddoewebdev/opsdeck/internal/dashboard"
	"nathanbeddoewebdev/opsdeck/internal/display"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func sampleSummary() dashboard.Summary {
	return dashboard.Summary{
		Cards: []dashboard.Card{
			{Kind: "server", Title: "Servers", Total: 3, ByStatus: []dashboard.StatusCount{
				{Status: "online", Count: 2},
				{Status: "offline", Count: 1},
				{Status: "maintenance", Count: 0},
			}},
			{Kind: "domain", Title: "Domains", Err: "timeout"},
		},
		Expiring: []dashboard.ExpiringDomain{
			{ID: "d1", Name: "example.com", Expiry: display.ExpiryInfo{Days: 4, Band: display.BandUrgent}},
		},
		Storage: []dashboard.Usage{
			{ID: "b1", Name: "backups", Percent: 75, Level: display.LevelWarning},
		},
		Renewals: []float64{1, 0, 2},
		LoadedAt: time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC),
	}
}

func TestRenderSummary(t *testing.T) {
	out := ansi.Strip(renderSummary(sampleSummary(), 120))

	for _, want := range []string{
		"Servers",
		"online 2",
		"offline 1",
		"timeout",
		"example.com",
		"Domains expiring within 30 days",
		"Storage usage",
		"Domain renewals by month",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in dashboard:\n%s", want, out)
		}
	}
	if strings.Contains(out, "maintenance") {
		t.Error("zero counts should be hidden")
	}
	if !strings.Contains(out, "None.") {
		t.Error("expected empty quota list to say None.")
	}
}

func TestDashboardModel_Refresh(t *testing.T) {
	m := newDashboardModel(context.Background(), dashboard.Sources{}, "http://localhost")
	m.now = func() time.Time { return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC) }

	msg := m.loadCmd()()
	next, _ := m.Update(msg)
	m = next.(dashboardModel)
	if !m.loaded || m.loading {
		t.Fatalf("loaded = %v, loading = %v after load", m.loaded, m.loading)
	}
	if len(m.summary.Cards) != 5 {
		t.Errorf("cards = %d, want 5", len(m.summary.Cards))
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	m = next.(dashboardModel)
	if !m.loading || cmd == nil {
		t.Error("r should start a reload")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd != nil {
		t.Error("r should be ignored while a reload is running")
	}
}

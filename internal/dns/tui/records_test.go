package tui

import (
	"context"
	"errors"
	"testing"

	"nathanbeddoewebdev/opsdeck/internal/dns/domain"
	shared "nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/tui/browse"

	tea "github.com/charmbracelet/bubbletea"
)

type mockRecords struct {
	domain  domain.Domain
	err     error
	calls   int
	lastAdd domain.RecordOpts
}

func (m *mockRecords) AddRecord(_ context.Context, _ string, opts domain.RecordOpts) (*domain.Domain, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	m.lastAdd = opts
	d := m.domain
	d.DNSRecords = append(append([]domain.Record(nil), d.DNSRecords...),
		domain.Record{ID: "rec-new", Type: opts.Type, Name: opts.Name, Value: opts.Value, TTL: opts.TTL})
	m.domain = d
	return &d, nil
}

func (m *mockRecords) UpdateRecord(_ context.Context, _, _ string, _ domain.RecordUpdateOpts) (*domain.Domain, error) {
	m.calls++
	return &m.domain, m.err
}

func (m *mockRecords) DeleteRecord(_ context.Context, _, recordID string) (*domain.Domain, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	d := m.domain
	d.DNSRecords = nil
	for _, r := range m.domain.DNSRecords {
		if r.ID != recordID {
			d.DNSRecords = append(d.DNSRecords, r)
		}
	}
	m.domain = d
	return &d, nil
}

func testDomain() domain.Domain {
	return domain.Domain{
		ID:   "dom-001",
		Name: "example.com",
		DNSRecords: []domain.Record{
			{ID: "rec-1", Type: domain.RecordTypeA, Name: "@", Value: "203.0.113.10", TTL: 3600},
			{ID: "rec-2", Type: domain.RecordTypeMX, Name: "@", Value: "mail.example.com", TTL: 3600},
		},
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(r *Records, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = r.Update(key(k))
	}
	return cmd
}

// run executes cmd and feeds any record result back, returning the
// follow-up command.
func run(r *Records, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out tea.Cmd
		for _, c := range batch {
			if next := run(r, c); next != nil {
				out = next
			}
		}
		return out
	}
	if res, ok := msg.(recordResultMsg); ok {
		_, next := r.Update(res)
		return next
	}
	return nil
}

func TestRecords_Add(t *testing.T) {
	svc := &mockRecords{domain: testDomain()}
	r := NewRecords(context.Background(), svc, testDomain(), "")

	press(r, "c", "tab", "tab")
	for _, ch := range "203.0.113.20" {
		press(r, string(ch))
	}
	follow := run(r, press(r, "ctrl+s"))

	if svc.lastAdd.Type != domain.RecordTypeA || svc.lastAdd.Name != "@" || svc.lastAdd.TTL != 3600 {
		t.Errorf("unexpected defaults sent: %+v", svc.lastAdd)
	}
	if svc.lastAdd.Value != "203.0.113.20" {
		t.Errorf("value = %q", svc.lastAdd.Value)
	}
	if r.list.Len() != 3 || r.view != recordsList {
		t.Errorf("records = %d, view = %d", r.list.Len(), r.view)
	}
	if follow == nil {
		t.Fatal("expected the updated domain to be passed up")
	}
	changed, ok := follow().(browse.ChangedMsg[domain.Domain])
	if !ok || len(changed.Item.DNSRecords) != 3 {
		t.Errorf("changed msg = %#v", changed)
	}
}

func TestRecords_DeleteDefaultsToCancel(t *testing.T) {
	svc := &mockRecords{domain: testDomain()}
	r := NewRecords(context.Background(), svc, testDomain(), "")

	if cmd := press(r, "d", "enter"); cmd != nil {
		t.Error("enter on the default button should cancel")
	}
	if svc.calls != 0 || r.view != recordsList {
		t.Fatalf("calls = %d, view = %d", svc.calls, r.view)
	}

	run(r, press(r, "d", "left", "enter"))
	if svc.calls != 1 || r.list.Len() != 1 {
		t.Errorf("calls = %d, records = %d", svc.calls, r.list.Len())
	}
	if r.status != "Deleted record A @." {
		t.Errorf("status = %q", r.status)
	}
}

func TestRecords_FailureKeepsRecords(t *testing.T) {
	svc := &mockRecords{
		domain: testDomain(),
		err:    shared.NewOpError(shared.ErrDelete, "Failed to delete DNS record. Please try again.", errors.New("500")),
	}
	r := NewRecords(context.Background(), svc, testDomain(), "")

	follow := run(r, press(r, "j", "d", "left", "enter"))
	if follow != nil {
		t.Error("a failed delete must not patch the parent")
	}
	if r.list.Len() != 2 {
		t.Errorf("records = %d, want 2", r.list.Len())
	}
	if !r.isError || r.status != "Failed to delete DNS record. Please try again." {
		t.Errorf("status = %q", r.status)
	}
}

func TestRecords_TypeFilter(t *testing.T) {
	r := NewRecords(context.Background(), &mockRecords{}, testDomain(), "")

	press(r, "f")
	if got := r.list.Facet("type"); got != "A" {
		t.Fatalf("type = %q, want A", got)
	}
	if n := len(r.list.Visible()); n != 1 {
		t.Errorf("visible = %d, want 1", n)
	}
}

func TestRecords_EscCloses(t *testing.T) {
	r := NewRecords(context.Background(), &mockRecords{}, testDomain(), "")
	cmd := press(r, "esc")
	if cmd == nil {
		t.Fatal("expected close command")
	}
	if _, ok := cmd().(browse.CloseScreenMsg); !ok {
		t.Error("esc should close the screen")
	}
}

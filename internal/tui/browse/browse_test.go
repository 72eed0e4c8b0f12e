package browse

import (
	"context"
	"errors"
	"testing"

	"nathanbeddoewebdev/opsdeck/internal/area"
	"nathanbeddoewebdev/opsdeck/internal/detail"
	"nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/form"
	"nathanbeddoewebdev/opsdeck/internal/listing"
	"nathanbeddoewebdev/opsdeck/internal/resource"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

type widget struct {
	ID     string
	Name   string
	Status string
}

func (w widget) Key() string   { return w.ID }
func (w widget) Label() string { return w.Name }

type widgetCreate struct{ Name, Status string }

func (widgetCreate) Validate() error { return nil }

type widgetPatch struct {
	Name   *string
	Status *string
}

func (widgetPatch) Validate() error { return nil }
func (p widgetPatch) IsEmpty() bool { return p.Name == nil && p.Status == nil }

type widgetDraft struct{ Name, Status string }

type fakeService struct {
	items     []widget
	listErr   error
	createErr error
	deleteErr error
	lastPatch widgetPatch
	next      int
}

func (f *fakeService) List(context.Context, resource.Filter) ([]widget, error) {
	return f.items, f.listErr
}

func (f *fakeService) Get(_ context.Context, id string) (*widget, error) {
	for _, w := range f.items {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, domain.NewOpError(domain.ErrNotFound, "Widget not found.", nil)
}

func (f *fakeService) Create(_ context.Context, c widgetCreate) (*widget, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.next++
	return &widget{ID: "new-" + string(rune('0'+f.next)), Name: c.Name, Status: c.Status}, nil
}

func (f *fakeService) Update(_ context.Context, id string, p widgetPatch) (*widget, error) {
	f.lastPatch = p
	w, err := f.Get(context.Background(), id)
	if err != nil {
		return nil, err
	}
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Status != nil {
		w.Status = *p.Status
	}
	return w, nil
}

func (f *fakeService) Delete(context.Context, string) error { return f.deleteErr }

func widgetArea() area.Def[widget, widgetCreate, widgetPatch, widgetDraft] {
	return area.Def[widget, widgetCreate, widgetPatch, widgetDraft]{
		Kind:  "widget",
		Nouns: resource.Nouns{Singular: "widget", Plural: "widgets"},
		NewList: func() *listing.List[widget] {
			return listing.New(listing.Config[widget]{
				Search: func(w widget) []string { return []string{w.Name} },
				Facets: []listing.Facet[widget]{{
					Name:    "status",
					Label:   "Status",
					Value:   func(w widget) string { return w.Status },
					Options: []string{"up", "down"},
				}},
				Columns: []listing.Column[widget]{
					{Header: "NAME", Value: func(w widget) string { return w.Name }},
					{Header: "STATUS", Value: func(w widget) string { return w.Status }},
				},
			})
		},
		Fields: []form.Field[widgetDraft]{
			form.Text("name", "Name", func(d *widgetDraft) *string { return &d.Name }).Require(),
			form.Choice("status", "Status", []string{"up", "down"}, func(d *widgetDraft) *string { return &d.Status }),
		},
		Defaults:   func() widgetDraft { return widgetDraft{Status: "up"} },
		FromEntity: func(w widget) widgetDraft { return widgetDraft{Name: w.Name, Status: w.Status} },
		ToCreate:   func(d widgetDraft) widgetCreate { return widgetCreate(d) },
		ToUpdate: func(seed, d widgetDraft) widgetPatch {
			return widgetPatch{Name: area.Changed(seed.Name, d.Name), Status: area.Changed(seed.Status, d.Status)}
		},
		Detail: func(w widget) []detail.Row { return []detail.Row{{Label: "Name", Value: w.Name}} },
		Filter: func(map[string]string) (resource.Filter, error) { return nil, nil },
	}
}

type model = Model[widget, widgetCreate, widgetPatch, widgetDraft]

func newModel(t *testing.T, svc *fakeService) model {
	t.Helper()
	m := New(context.Background(), Config[widget, widgetCreate, widgetPatch, widgetDraft]{
		Area:    widgetArea(),
		Service: svc,
	})
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return send(t, m, m.loadCmd()())
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

// press sends one key and returns the command it produced.
func press(t *testing.T, m model, key string) (model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		msg = tea.KeyMsg{Type: tea.KeyCtrlS}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, cmd := m.Update(msg)
	return next.(model), cmd
}

func typeText(t *testing.T, m model, text string) model {
	t.Helper()
	for _, r := range text {
		m, _ = press(t, m, string(r))
	}
	return m
}

// results runs cmd, flattening batches, and returns the messages the
// browser itself produces.
func results(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, results(c)...)
		}
		return out
	}
	switch msg.(type) {
	case savedMsg[widget], deletedMsg, fetchedMsg[widget], loadedMsg[widget]:
		return []tea.Msg{msg}
	}
	return nil
}

func names(items []widget) []string {
	out := make([]string, len(items))
	for i, w := range items {
		out[i] = w.Name
	}
	return out
}

func seeded() *fakeService {
	return &fakeService{items: []widget{
		{ID: "w1", Name: "web-01", Status: "up"},
		{ID: "w2", Name: "db-01", Status: "down"},
	}}
}

func TestLoad(t *testing.T) {
	m := newModel(t, seeded())
	if m.loading {
		t.Error("still loading after list returned")
	}
	if m.status != "Loaded 2 widgets." || m.isError {
		t.Errorf("status = %q (error %v)", m.status, m.isError)
	}
}

func TestLoad_FailureKeepsItems(t *testing.T) {
	svc := seeded()
	m := newModel(t, svc)

	svc.listErr = domain.NewOpError(domain.ErrLoad, "Failed to load widgets. Please check your connection.", errors.New("refused"))
	m, cmd := press(t, m, "r")
	m = send(t, m, results(cmd)...)

	if m.list.Len() != 2 {
		t.Errorf("items = %d, want previous 2", m.list.Len())
	}
	if !m.isError || m.status != "Failed to load widgets. Please check your connection." {
		t.Errorf("status = %q (error %v)", m.status, m.isError)
	}
}

func TestSearchAndFacet(t *testing.T) {
	m := newModel(t, seeded())

	m, _ = press(t, m, "/")
	m = typeText(t, m, "db")
	if diff := cmp.Diff([]string{"db-01"}, names(m.list.Visible())); diff != "" {
		t.Errorf("search mismatch (-want +got):\n%s", diff)
	}
	m, _ = press(t, m, "esc")
	if m.list.Search() != "" || m.searching {
		t.Errorf("esc should clear search, got %q", m.list.Search())
	}

	m, _ = press(t, m, "1")
	if got := m.list.Facet("status"); got != "up" {
		t.Errorf("facet = %q, want up", got)
	}
	if diff := cmp.Diff([]string{"web-01"}, names(m.list.Visible())); diff != "" {
		t.Errorf("facet mismatch (-want +got):\n%s", diff)
	}

	m, _ = press(t, m, "x")
	if m.list.Filtered() {
		t.Error("x should reset every filter")
	}
}

func TestCreate(t *testing.T) {
	m := newModel(t, seeded())

	m, _ = press(t, m, "c")
	if m.view != viewForm || m.editor.Form().Mode() != form.ModeCreate {
		t.Fatalf("expected create form, view = %d", m.view)
	}
	m = typeText(t, m, "cache-01")
	m, cmd := press(t, m, "ctrl+s")
	if !m.editor.Form().Submitting() {
		t.Fatal("form should be submitting")
	}
	m = send(t, m, results(cmd)...)

	if m.view != viewList {
		t.Errorf("view = %d, want list", m.view)
	}
	if diff := cmp.Diff([]string{"web-01", "db-01", "cache-01"}, names(m.list.Items())); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if m.status != "Created widget cache-01." {
		t.Errorf("status = %q", m.status)
	}
}

func TestCreate_RequiredField(t *testing.T) {
	m := newModel(t, seeded())

	m, _ = press(t, m, "c")
	m, cmd := press(t, m, "ctrl+s")
	if cmd != nil {
		t.Error("submit with a missing name should not call the service")
	}
	if got := m.editor.Form().FieldErr("name"); got != "Name is required" {
		t.Errorf("field error = %q", got)
	}
}

func TestCreate_RejectedKeepsFormOpen(t *testing.T) {
	svc := seeded()
	svc.createErr = domain.NewOpError(domain.ErrSave, "Failed to create widget. Please try again.", errors.New("500"))
	m := newModel(t, svc)

	m, _ = press(t, m, "c")
	m = typeText(t, m, "cache-01")
	m, cmd := press(t, m, "ctrl+s")
	m = send(t, m, results(cmd)...)

	f := m.editor.Form()
	if m.view != viewForm || !f.IsOpen() || f.Submitting() {
		t.Fatalf("form should stay open for another attempt")
	}
	if f.Err() != "Failed to create widget. Please try again." {
		t.Errorf("form error = %q", f.Err())
	}
	if m.list.Len() != 2 {
		t.Errorf("items = %d, want 2", m.list.Len())
	}
}

func TestEdit_SendsOnlyChanges(t *testing.T) {
	svc := seeded()
	m := newModel(t, svc)

	m, _ = press(t, m, "e")
	m, _ = press(t, m, "tab")
	m, _ = press(t, m, "right")
	m, cmd := press(t, m, "ctrl+s")
	m = send(t, m, results(cmd)...)

	if svc.lastPatch.Name != nil {
		t.Errorf("name should not be sent, got %q", *svc.lastPatch.Name)
	}
	if svc.lastPatch.Status == nil || *svc.lastPatch.Status != "down" {
		t.Errorf("status patch = %v", svc.lastPatch.Status)
	}
	if got, _ := m.list.Get("w1"); got.Status != "down" {
		t.Errorf("list not patched: %+v", got)
	}
}

func TestDelete_FailureKeepsItems(t *testing.T) {
	svc := seeded()
	svc.deleteErr = domain.NewOpError(domain.ErrDelete, "Failed to delete widget. Please try again.", errors.New("404"))
	m := newModel(t, svc)

	m, _ = press(t, m, "d")
	if m.view != viewConfirm {
		t.Fatalf("view = %d, want confirm", m.view)
	}
	m, cmd := press(t, m, "y")
	m = send(t, m, results(cmd)...)

	if m.list.Len() != 2 {
		t.Errorf("items = %d, want 2", m.list.Len())
	}
	if !m.isError || m.status != "Failed to delete widget. Please try again." {
		t.Errorf("status = %q", m.status)
	}
	if m.busy != "" {
		t.Error("busy flag left set")
	}
}

func TestDelete(t *testing.T) {
	m := newModel(t, seeded())

	m, _ = press(t, m, "j")
	m, _ = press(t, m, "d")
	m, cmd := press(t, m, "y")
	m = send(t, m, results(cmd)...)

	if diff := cmp.Diff([]string{"web-01"}, names(m.list.Items())); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if m.status != "Deleted widget db-01." {
		t.Errorf("status = %q", m.status)
	}
}

func TestDetail_DropsStaleResponse(t *testing.T) {
	m := newModel(t, seeded())

	m, first := press(t, m, "enter")
	stale := results(first)
	m, _ = press(t, m, "esc")
	m, _ = press(t, m, "j")
	m, _ = press(t, m, "enter")

	m = send(t, m, stale...)
	if m.loader.ID() != "w2" || m.loader.State() != detail.Loading {
		t.Errorf("stale response applied: id %q state %s", m.loader.ID(), m.loader.State())
	}
}

func TestChangedMsgPatchesList(t *testing.T) {
	m := newModel(t, seeded())
	m = send(t, m, ChangedMsg[widget]{Item: widget{ID: "w2", Name: "db-01", Status: "up"}})

	if got, _ := m.list.Get("w2"); got.Status != "up" {
		t.Errorf("item not replaced: %+v", got)
	}
}

package listing

import (
	"errors"
	"fmt"
	"testing"

	"nathanbeddoewebdev/opsdeck/internal/domain"

	"github.com/google/go-cmp/cmp"
)

type host struct {
	ID     string
	Name   string
	Status string
	Team   string
	Tags   []string
}

func (h host) Key() string   { return h.ID }
func (h host) Label() string { return h.Name }

func newHosts() *List[host] {
	l := New(Config[host]{
		Search: func(h host) []string { return append([]string{h.Name}, h.Tags...) },
		Facets: []Facet[host]{
			{Name: "status", Label: "Status", Value: func(h host) string { return h.Status }, Options: []string{"up", "down"}},
			{Name: "team", Label: "Team", Value: func(h host) string { return h.Team }},
		},
	})
	l.Load([]host{
		{ID: "1", Name: "Web-01", Status: "up", Team: "ops", Tags: []string{"nginx"}},
		{ID: "2", Name: "db-01", Status: "down", Team: "dba", Tags: []string{"postgres"}},
		{ID: "3", Name: "web-02", Status: "down", Team: "ops"},
	})
	return l
}

func ids(items []host) []string {
	out := make([]string, 0, len(items))
	for _, h := range items {
		out = append(out, h.ID)
	}
	return out
}

func TestVisible(t *testing.T) {
	tests := []struct {
		name   string
		search string
		status string
		team   string
		want   []string
	}{
		{"no filters", "", All, All, []string{"1", "2", "3"}},
		{"case-insensitive search", "WEB", All, All, []string{"1", "3"}},
		{"search matches tag", "postgres", All, All, []string{"2"}},
		{"facet only", "", "down", All, []string{"2", "3"}},
		{"search and facet", "web", "down", All, []string{"3"}},
		{"two facets", "", "down", "ops", []string{"3"}},
		{"nothing matches", "mail", All, All, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newHosts()
			l.SetSearch(tt.search)
			if err := l.SetFacet("status", tt.status); err != nil {
				t.Fatal(err)
			}
			if err := l.SetFacet("team", tt.team); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, ids(l.Visible())); diff != "" {
				t.Errorf("visible mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Every item is visible exactly when one search field contains the text
// and every facet matches.
func TestVisible_AgreesWithPredicate(t *testing.T) {
	l := newHosts()
	for _, search := range []string{"", "w", "01", "NGINX", "x"} {
		for _, status := range []string{All, "up", "down"} {
			l.SetSearch(search)
			_ = l.SetFacet("status", status)
			visible := map[string]bool{}
			for _, h := range l.Visible() {
				visible[h.ID] = true
			}
			for _, h := range l.Items() {
				if got, want := visible[h.ID], l.Matches(h); got != want {
					t.Errorf("search=%q status=%q item %s visible=%v matches=%v", search, status, h.ID, got, want)
				}
			}
		}
	}
}

func TestSetFacet_Rejects(t *testing.T) {
	l := newHosts()
	if err := l.SetFacet("status", "rebooting"); !errors.Is(err, domain.ErrInvalid) {
		t.Errorf("expected ErrInvalid for unknown option, got %v", err)
	}
	if err := l.SetFacet("colour", "red"); !errors.Is(err, domain.ErrInvalid) {
		t.Errorf("expected ErrInvalid for unknown facet, got %v", err)
	}
	if err := l.SetFacet("team", "anything"); err != nil {
		t.Errorf("open facets accept any value, got %v", err)
	}
	if err := l.SetFacet("status", ""); err != nil || l.Facet("status") != All {
		t.Errorf("empty value should select all, got %q %v", l.Facet("status"), err)
	}
}

func TestOptions(t *testing.T) {
	l := newHosts()
	if diff := cmp.Diff([]string{All, "up", "down"}, l.Options("status")); diff != "" {
		t.Errorf("closed options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{All, "dba", "ops"}, l.Options("team")); diff != "" {
		t.Errorf("derived options mismatch (-want +got):\n%s", diff)
	}
	if l.Options("missing") != nil {
		t.Error("unknown facet should have no options")
	}
}

func TestMutations(t *testing.T) {
	l := newHosts()

	l.Add(host{ID: "4", Name: "mail-01", Status: "up"})
	if l.Len() != 4 {
		t.Fatalf("Add: len = %d", l.Len())
	}

	before := l.Items()
	if !l.Replace(host{ID: "2", Name: "db-01", Status: "up", Team: "dba"}) {
		t.Fatal("Replace should find id 2")
	}
	after := l.Items()
	for i := range before {
		if before[i].ID == "2" {
			if after[i].Status != "up" {
				t.Errorf("replaced item not updated: %+v", after[i])
			}
			continue
		}
		if diff := cmp.Diff(before[i], after[i]); diff != "" {
			t.Errorf("other item changed (-want +got):\n%s", diff)
		}
	}
	if l.Replace(host{ID: "99"}) {
		t.Error("Replace of unknown id should report false")
	}

	l.Add(host{ID: "4", Name: "mail-01b"})
	if l.Len() != 4 {
		t.Errorf("Add of existing id should replace, len = %d", l.Len())
	}
}

func TestRemove_Idempotent(t *testing.T) {
	l := newHosts()

	if !l.Remove("2") {
		t.Fatal("first Remove should succeed")
	}
	once := l.Items()
	if l.Remove("2") {
		t.Error("second Remove should be a no-op")
	}
	if diff := cmp.Diff(once, l.Items()); diff != "" {
		t.Errorf("second Remove changed items (-want +got):\n%s", diff)
	}
}

func TestFailKeepsItems(t *testing.T) {
	l := newHosts()
	before := l.Items()

	l.Fail(domain.NewOpError(domain.ErrLoad, "Failed to load hosts. Please check your connection.", fmt.Errorf("dial tcp: refused")))
	if l.Err() != "Failed to load hosts. Please check your connection." {
		t.Errorf("Err() = %q", l.Err())
	}
	if diff := cmp.Diff(before, l.Items()); diff != "" {
		t.Errorf("items changed on failure (-want +got):\n%s", diff)
	}

	l.ClearError()
	if l.Err() != "" {
		t.Error("ClearError should clear the message")
	}

	l.Fail(errors.New("boom"))
	l.Load(before[:1])
	if l.Err() != "" || l.Len() != 1 {
		t.Errorf("Load should replace items and clear error: %q %d", l.Err(), l.Len())
	}
}

func TestRestoreAndReset(t *testing.T) {
	l := newHosts()
	l.Restore("web", map[string]string{"status": "down", "team": "ops", "gone": "x"})

	if l.Search() != "web" || l.Facet("status") != "down" || l.Facet("team") != "ops" {
		t.Errorf("restore failed: %q %v", l.Search(), l.Facets())
	}
	if !l.Filtered() {
		t.Error("expected Filtered after restore")
	}

	l.ResetFilters()
	if l.Filtered() || len(l.Visible()) != 3 {
		t.Errorf("reset failed: %v", l.Facets())
	}
}

func TestRows(t *testing.T) {
	l := New(Config[host]{
		Columns: []Column[host]{
			{Header: "ID", Value: func(h host) string { return h.ID }},
			{Header: "NAME", Value: func(h host) string { return h.Name }},
		},
	})
	if diff := cmp.Diff([]string{"ID", "NAME"}, l.Headers()); diff != "" {
		t.Errorf("headers mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"1", "web"}, l.Row(host{ID: "1", Name: "web"})); diff != "" {
		t.Errorf("row mismatch (-want +got):\n%s", diff)
	}
}

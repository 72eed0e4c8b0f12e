package viewprefs

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func tempRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	r, err := OpenAt(filepath.Join(t.TempDir(), "opsdeck.db"))
	if err != nil {
		t.Fatalf("OpenAt failed: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestGet_NotFound(t *testing.T) {
	r := tempRepo(t)

	got, err := r.Get(context.Background(), "http://localhost:8000/api/v1", "server")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestSave_Upserts(t *testing.T) {
	r := tempRepo(t)
	ctx := context.Background()
	origin := "http://localhost:8000/api/v1"

	first := &ViewPrefs{Origin: origin, Kind: "server", Search: "web", Facets: map[string]string{"status": "online"}}
	if err := r.Save(ctx, first); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if first.ID == 0 {
		t.Error("expected ID to be assigned")
	}

	second := &ViewPrefs{Origin: origin, Kind: "server", Search: "db", Facets: map[string]string{"category": "staging"}}
	if err := r.Save(ctx, second); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := r.Get(ctx, origin, "server")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Search != "db" {
		t.Errorf("Search = %q, want %q", got.Search, "db")
	}
	if diff := cmp.Diff(map[string]string{"category": "staging"}, got.Facets); diff != "" {
		t.Errorf("facets mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_KeyedByOrigin(t *testing.T) {
	r := tempRepo(t)
	ctx := context.Background()

	if err := r.Save(ctx, &ViewPrefs{Origin: "http://a", Kind: "domain", Search: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := r.Save(ctx, &ViewPrefs{Origin: "http://b", Kind: "domain", Search: "b"}); err != nil {
		t.Fatal(err)
	}

	got, err := r.Get(ctx, "http://a", "domain")
	if err != nil || got == nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Search != "a" {
		t.Errorf("Search = %q, want %q", got.Search, "a")
	}
}

type failingRepo struct{}

func (failingRepo) Get(context.Context, string, string) (*ViewPrefs, error) {
	return nil, errors.New("disk full")
}
func (failingRepo) Save(context.Context, *ViewPrefs) error { return errors.New("disk full") }
func (failingRepo) Close() error                           { return nil }

func TestService_BestEffort(t *testing.T) {
	ctx := context.Background()

	var nilSvc *Service
	if search, facets := nilSvc.Recall(ctx, "server"); search != "" || facets != nil {
		t.Error("nil service should recall nothing")
	}

	svc := NewService(failingRepo{}, "http://a", zerolog.Nop())
	svc.Remember(ctx, "server", "web", nil)
	if search, facets := svc.Recall(ctx, "server"); search != "" || facets != nil {
		t.Error("failing repo should recall nothing")
	}
}

func TestService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := NewService(tempRepo(t), "http://a", zerolog.Nop())

	svc.Remember(ctx, "storage", "logs", map[string]string{"type": "object"})
	search, facets := svc.Recall(ctx, "storage")
	if search != "logs" || facets["type"] != "object" {
		t.Errorf("Recall = %q, %v", search, facets)
	}
}

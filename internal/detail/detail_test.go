package detail

import (
	"errors"
	"testing"

	"nathanbeddoewebdev/opsdeck/internal/domain"
)

type record struct{ ID, Name string }

func TestLoader_Lifecycle(t *testing.T) {
	var l Loader[record]
	if l.State() != Idle {
		t.Fatalf("zero value should be Idle, got %v", l.State())
	}

	tk := l.Begin("srv-1")
	if l.State() != Loading {
		t.Fatalf("expected Loading, got %v", l.State())
	}
	if _, ok := l.Item(); ok {
		t.Error("Item should not be available while loading")
	}

	if !l.Resolve(tk, &record{ID: "srv-1", Name: "web-01"}, nil) {
		t.Fatal("current ticket should resolve")
	}
	item, ok := l.Item()
	if !ok || item.Name != "web-01" || l.State() != Loaded {
		t.Errorf("got %+v ok=%v state=%v", item, ok, l.State())
	}
	if l.Resolve(tk, &record{ID: "srv-1", Name: "again"}, nil) {
		t.Error("a ticket should resolve only once")
	}
}

func TestLoader_DiscardsStaleResults(t *testing.T) {
	var l Loader[record]

	first := l.Begin("srv-1")
	second := l.Begin("srv-2")

	if l.Resolve(first, &record{ID: "srv-1"}, nil) {
		t.Fatal("stale ticket should be discarded")
	}
	if l.State() != Loading || l.ID() != "srv-2" {
		t.Fatalf("stale result changed the loader: state=%v id=%q", l.State(), l.ID())
	}

	if !l.Resolve(second, &record{ID: "srv-2"}, nil) {
		t.Fatal("current ticket should resolve")
	}
	if item, _ := l.Item(); item.ID != "srv-2" {
		t.Errorf("loaded %q, want srv-2", item.ID)
	}
}

func TestLoader_RefetchSameID(t *testing.T) {
	var l Loader[record]
	tk := l.Begin("srv-1")
	l.Resolve(tk, &record{ID: "srv-1", Name: "old"}, nil)

	again := l.Begin("srv-1")
	if _, ok := l.Item(); ok {
		t.Error("Begin should drop the previous record")
	}
	if l.Resolve(tk, &record{ID: "srv-1", Name: "older"}, nil) {
		t.Error("earlier ticket for the same id should be stale")
	}
	l.Resolve(again, &record{ID: "srv-1", Name: "new"}, nil)
	if item, _ := l.Item(); item.Name != "new" {
		t.Errorf("got %q", item.Name)
	}
}

func TestLoader_Failures(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantMsg      string
		wantNotFound bool
	}{
		{
			name:         "not found",
			err:          domain.NewOpError(domain.ErrNotFound, "Failed to load server details.", domain.ErrNotFound),
			wantMsg:      "Failed to load server details.",
			wantNotFound: true,
		},
		{
			name:    "transport",
			err:     domain.NewOpError(domain.ErrLoad, "Failed to load server details.", errors.New("dial tcp")),
			wantMsg: "Failed to load server details.",
		},
		{
			name:         "nil item",
			wantMsg:      "Record not found.",
			wantNotFound: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Loader[record]
			tk := l.Begin("srv-9")
			if !l.Resolve(tk, nil, tt.err) {
				t.Fatal("expected resolve")
			}
			if l.State() != Failed {
				t.Errorf("state = %v, want failed", l.State())
			}
			if l.Err() != tt.wantMsg {
				t.Errorf("Err() = %q, want %q", l.Err(), tt.wantMsg)
			}
			if l.NotFound() != tt.wantNotFound {
				t.Errorf("NotFound() = %v, want %v", l.NotFound(), tt.wantNotFound)
			}
		})
	}
}

func TestLoader_ResetInvalidatesTickets(t *testing.T) {
	var l Loader[record]
	tk := l.Begin("srv-1")
	l.Reset()
	if l.Resolve(tk, &record{}, nil) {
		t.Error("ticket issued before Reset should be stale")
	}
	if l.State() != Idle {
		t.Errorf("state = %v", l.State())
	}
}

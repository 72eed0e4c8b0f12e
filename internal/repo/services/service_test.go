package services

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"nathanbeddoewebdev/opsdeck/internal/api"
	"nathanbeddoewebdev/opsdeck/internal/devserver"
	shared "nathanbeddoewebdev/opsdeck/internal/domain"
)

// Deleting a repository the API does not know fails with a delete error
// and the standard message.
func TestService_DeleteMissingRepository(t *testing.T) {
	seed, err := devserver.DefaultSeed()
	if err != nil {
		t.Fatalf("DefaultSeed: %v", err)
	}
	srv := httptest.NewServer(devserver.New(devserver.DefaultPrefix, devserver.WithSeed(seed)))
	t.Cleanup(srv.Close)
	svc := New(api.NewInventory(api.New(srv.URL+devserver.DefaultPrefix, api.WithHTTPClient(srv.Client()))).Repositories)

	err = svc.Delete(context.Background(), "r1")
	if !errors.Is(err, shared.ErrDelete) {
		t.Fatalf("expected ErrDelete, got %v", err)
	}
	if got := shared.Message(err); got != "Failed to delete repository. Please try again." {
		t.Errorf("message = %q", got)
	}

	items, err := svc.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != len(seed.Repositories) {
		t.Errorf("repositories changed: %d, want %d", len(items), len(seed.Repositories))
	}
}

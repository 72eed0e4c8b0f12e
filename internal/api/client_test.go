package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"nathanbeddoewebdev/opsdeck/internal/domain"
	server "nathanbeddoewebdev/opsdeck/internal/server/domain"

	"github.com/google/go-cmp/cmp"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/api/v1/", WithHTTPClient(srv.Client()))
}

func TestClient_Do_SendsJSONAndHeaders(t *testing.T) {
	var gotPath, gotQuery, gotBody, gotRequestID, gotContentType string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	var out struct {
		OK bool `json:"ok"`
	}
	status, err := c.Do(context.Background(), http.MethodPost, "/servers", url.Values{"status": {"online"}}, map[string]string{"name": "web-01"}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != http.StatusCreated || !out.OK {
		t.Errorf("status=%d out=%+v", status, out)
	}
	if gotPath != "/api/v1/servers" {
		t.Errorf("path = %q, want /api/v1/servers", gotPath)
	}
	if gotQuery != "status=online" {
		t.Errorf("query = %q", gotQuery)
	}
	if gotBody != `{"name":"web-01"}` {
		t.Errorf("body = %q", gotBody)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
	if len(gotRequestID) != 36 {
		t.Errorf("expected uuid request id, got %q", gotRequestID)
	}
}

func TestClient_Do_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   error
		detail string
	}{
		{http.StatusBadRequest, `{"detail":"name is taken"}`, domain.ErrInvalid, "name is taken"},
		{http.StatusUnprocessableEntity, `{"detail":[{"loc":["body","ttl"],"msg":"must be positive"}]}`, domain.ErrInvalid, "ttl: must be positive"},
		{http.StatusUnauthorized, ``, domain.ErrUnauthorized, "Unauthorized"},
		{http.StatusForbidden, `{}`, domain.ErrUnauthorized, "Forbidden"},
		{http.StatusNotFound, `{"detail":"Server srv-1 not found"}`, domain.ErrNotFound, "Server srv-1 not found"},
		{http.StatusConflict, `{"detail":"exists"}`, domain.ErrConflict, "exists"},
		{http.StatusTooManyRequests, `slow down`, domain.ErrRateLimited, "Too Many Requests"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			status, err := c.Do(context.Background(), http.MethodGet, "/servers/srv-1", nil, nil, &struct{}{})
			if status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if !strings.Contains(err.Error(), tt.detail) {
				t.Errorf("expected %q in %q", tt.detail, err.Error())
			}
		})
	}
}

func TestClient_Do_ServerErrorIsGeneric(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"detail":"Error fetching servers: boom"}`))
	})
	_, err := c.Do(context.Background(), http.MethodGet, "/servers", nil, nil, &[]server.Server{})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, sentinel := range []error{domain.ErrInvalid, domain.ErrNotFound, domain.ErrUnauthorized} {
		if errors.Is(err, sentinel) {
			t.Errorf("500 should not map to %v", sentinel)
		}
	}
	if !strings.Contains(err.Error(), "status 500") || !strings.Contains(err.Error(), "boom") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestClient_Do_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := New(base)
	if _, err := c.Do(context.Background(), http.MethodGet, "/servers", nil, nil, nil); err == nil {
		t.Fatal("expected transport error, got nil")
	}
}

func TestClient_Do_DecodeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"srv-1","status":"exploded"}]`))
	})
	var out []server.Server
	if _, err := c.Do(context.Background(), http.MethodGet, "/servers", nil, nil, &out); err == nil {
		t.Fatal("expected unknown enum to fail decoding")
	}
}

func TestResource_CRUD(t *testing.T) {
	stored := server.Server{ID: "srv-1", Name: "web-01", Status: server.StatusOnline, Category: server.CategoryProduction}

	var calls []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/v1/servers":
			_ = json.NewEncoder(w).Encode([]server.Server{stored})
		case r.Method == http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(stored)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			_ = json.NewEncoder(w).Encode(stored)
		}
	})

	inv := NewInventory(c)
	ctx := context.Background()

	list, err := inv.Servers.List(ctx, nil)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if diff := cmp.Diff([]server.Server{stored}, list); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}

	if _, err := inv.Servers.Get(ctx, "srv-1"); err != nil {
		t.Fatalf("Get: %v", err)
	}
	if _, err := inv.Servers.Create(ctx, server.CreateOpts{Name: "web-01"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	name := "web-02"
	if _, err := inv.Servers.Update(ctx, "srv-1", server.UpdateOpts{Name: &name}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := inv.Servers.Delete(ctx, "srv-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	want := []string{
		"GET /api/v1/servers",
		"GET /api/v1/servers/srv-1",
		"POST /api/v1/servers",
		"PUT /api/v1/servers/srv-1",
		"DELETE /api/v1/servers/srv-1",
	}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestResource_ListEmptyBodyIsEmptySlice(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})
	got, err := NewInventory(c).Emails.List(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestClient_Do_SingleAttempt(t *testing.T) {
	tests := []struct {
		method string
		status int
	}{
		{http.MethodGet, http.StatusServiceUnavailable},
		{http.MethodGet, http.StatusBadGateway},
		{http.MethodPost, http.StatusServiceUnavailable},
		{http.MethodGet, http.StatusNotFound},
	}
	for _, tt := range tests {
		attempts := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(tt.status)
		}))
		c := New(srv.URL, WithHTTPClient(srv.Client()))

		var out []server.Server
		status, err := c.Do(context.Background(), tt.method, "/servers", nil, nil, &out)
		srv.Close()
		if err == nil || status != tt.status {
			t.Errorf("%s %d: got status %d, err %v", tt.method, tt.status, status, err)
		}
		if attempts != 1 {
			t.Errorf("%s %d: expected 1 attempt, got %d", tt.method, tt.status, attempts)
		}
	}
}

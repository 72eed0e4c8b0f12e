package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestAccount_Decode(t *testing.T) {
	var a Account
	body := `{"id":"em-1","email":"jane@example.com","displayName":"Jane","provider":"Zoho Mail","status":"suspended","department":"Finance","quotaUsed":2048,"quotaLimit":15360,"createdDate":"2024-01-10"}`
	if err := json.Unmarshal([]byte(body), &a); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Status != StatusSuspended || a.QuotaUsed != 2048 || a.LastLogin != "" {
		t.Errorf("unexpected account: %+v", a)
	}
	if a.Key() != "em-1" || a.Label() != "jane@example.com" {
		t.Errorf("Key/Label = %q/%q", a.Key(), a.Label())
	}

	if err := json.Unmarshal([]byte(`{"status":"deleted"}`), &a); err == nil {
		t.Error("expected unknown status to fail decoding")
	}
}

func TestCreateOpts_Validate(t *testing.T) {
	opts := CreateOpts{
		Email:       "ops@example.com",
		DisplayName: "Ops",
		Provider:    "Google Workspace",
		Status:      StatusActive,
		Department:  "Engineering",
		QuotaLimit:  DefaultQuotaLimit,
		CreatedDate: "2026-10-01",
	}
	if err := opts.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	opts.Email = "not-an-address"
	opts.QuotaLimit = 0
	err := opts.Validate()
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	for _, want := range []string{"email must be a valid email address", "quotaLimit must be greater than 0"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestCreateOpts_OmitsServerManagedFields(t *testing.T) {
	data, err := json.Marshal(CreateOpts{Email: "a@b.co"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, key := range []string{`"quotaUsed"`, `"lastLogin"`, `"id"`} {
		if strings.Contains(string(data), key) {
			t.Errorf("create body should not carry %s: %s", key, data)
		}
	}
}

func TestUpdateOpts_Validate(t *testing.T) {
	dept := ""
	if err := (UpdateOpts{Department: &dept}).Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected blank department to be rejected, got %v", err)
	}
	limit := int64(-1)
	if err := (UpdateOpts{QuotaLimit: &limit}).Validate(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected negative quota to be rejected, got %v", err)
	}
	st := StatusPending
	if err := (UpdateOpts{Status: &st}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestListFilter_Query(t *testing.T) {
	q, err := ListFilter{Provider: "Microsoft 365", Department: "Sales"}.Query()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, want := q.Encode(), "department=Sales&provider=Microsoft+365"; got != want {
		t.Errorf("Query() = %q, want %q", got, want)
	}
	if _, err := (ListFilter{Status: "gone"}).Query(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

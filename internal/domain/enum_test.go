package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type shade string

var shades = []shade{"light", "dark"}

func (s *shade) UnmarshalText(text []byte) error {
	return UnmarshalEnum("shade", text, shades, s)
}

func TestParseEnum(t *testing.T) {
	got, err := ParseEnum("shade", " DARK ", shades)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "dark" {
		t.Errorf("got %q, want %q", got, "dark")
	}

	_, err = ParseEnum("shade", "grey", shades)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("expected ErrInvalid, got %v", err)
	}
	if want := `invalid input: unknown shade "grey" (valid: light, dark)`; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestUnmarshalEnum_ViaJSON(t *testing.T) {
	var v struct {
		Shade shade `json:"shade"`
	}
	if err := json.Unmarshal([]byte(`{"shade":"light"}`), &v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Shade != "light" {
		t.Errorf("got %q", v.Shade)
	}

	err := json.Unmarshal([]byte(`{"shade":"neon"}`), &v)
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid from decode, got %v", err)
	}
}

func TestEnumStrings(t *testing.T) {
	if diff := cmp.Diff([]string{"light", "dark"}, EnumStrings(shades)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if !IsMember(shade("dark"), shades) || IsMember(shade("x"), shades) {
		t.Error("IsMember mismatch")
	}
}

package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestOpError_IsKindAndCause(t *testing.T) {
	cause := fmt.Errorf("%w: server srv-1 not found", ErrNotFound)
	err := NewOpError(ErrDelete, "Failed to delete server. Please try again.", cause)

	if !errors.Is(err, ErrDelete) {
		t.Error("expected errors.Is(err, ErrDelete)")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected errors.Is(err, ErrNotFound) through the cause")
	}
	if errors.Is(err, ErrSave) {
		t.Error("did not expect errors.Is(err, ErrSave)")
	}
	if got := err.Error(); got != "Failed to delete server. Please try again." {
		t.Errorf("Error() = %q", got)
	}
}

func TestOpError_NilCause(t *testing.T) {
	err := NewOpError(ErrLoad, "Failed to load servers.", nil)
	if !errors.Is(err, ErrLoad) {
		t.Error("expected errors.Is(err, ErrLoad)")
	}
}

func TestMessage(t *testing.T) {
	wrapped := fmt.Errorf("list view: %w", NewOpError(ErrLoad, "Failed to load domains. Please check your connection.", nil))

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), "boom"},
		{"op error", NewOpError(ErrSave, "Failed to create domain. Please try again.", errors.New("500")), "Failed to create domain. Please try again."},
		{"wrapped op error", wrapped, "Failed to load domains. Please check your connection."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

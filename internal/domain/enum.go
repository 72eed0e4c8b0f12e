package domain

import (
	"fmt"
	"slices"
	"strings"
)

// ParseEnum matches s against the members of a closed enumeration,
// case-insensitively. Unknown values wrap ErrInvalid.
func ParseEnum[E ~string](what, s string, members []E) (E, error) {
	needle := strings.TrimSpace(s)
	for _, m := range members {
		if strings.EqualFold(string(m), needle) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: unknown %s %q (valid: %s)", ErrInvalid, what, s, JoinEnum(members))
}

// IsMember reports whether v is one of members.
func IsMember[E ~string](v E, members []E) bool {
	return slices.Contains(members, v)
}

// UnmarshalEnum decodes text into dst only if it is an exact member.
// Used by UnmarshalText implementations so unknown values never reach
// callers silently.
func UnmarshalEnum[E ~string](what string, text []byte, members []E, dst *E) error {
	v := E(text)
	if !IsMember(v, members) {
		return fmt.Errorf("%w: unknown %s %q", ErrInvalid, what, string(text))
	}
	*dst = v
	return nil
}

// JoinEnum renders members as a comma-separated list.
func JoinEnum[E ~string](members []E) string {
	parts := make([]string, len(members))
	for i, m := range members {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

// EnumStrings converts members to plain strings, e.g. for select options.
func EnumStrings[E ~string](members []E) []string {
	out := make([]string, len(members))
	for i, m := range members {
		out[i] = string(m)
	}
	return out
}

package form

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"nathanbeddoewebdev/opsdeck/internal/domain"
)

// DateLayout is the calendar date format used by every date field.
const DateLayout = "2006-01-02"

// Kind selects how a field is edited and parsed.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindFloat
	KindBool
	KindEnum
	KindDate
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindEnum:
		return "enum"
	case KindDate:
		return "date"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Field binds one editable attribute of a draft D.
//
// Get renders the current value as text. Set parses text and stores it in
// the draft; it must leave the draft untouched when it returns an error.
type Field[D any] struct {
	Key      string
	Label    string
	Kind     Kind
	Options  []string
	Required bool
	Hint     string

	Get func(*D) string
	Set func(*D, string) error
}

// Require returns a copy of f marked as required.
func (f Field[D]) Require() Field[D] {
	f.Required = true
	return f
}

// WithHint returns a copy of f carrying placeholder text.
func (f Field[D]) WithHint(hint string) Field[D] {
	f.Hint = hint
	return f
}

func invalid(label, format string, args ...any) error {
	return fmt.Errorf("%w: %s %s", domain.ErrInvalid, label, fmt.Sprintf(format, args...))
}

// Text binds a free-text string field.
func Text[D any](key, label string, at func(*D) *string) Field[D] {
	return Field[D]{
		Key:   key,
		Label: label,
		Kind:  KindText,
		Get:   func(d *D) string { return *at(d) },
		Set: func(d *D, v string) error {
			*at(d) = strings.TrimSpace(v)
			return nil
		},
	}
}

// Int binds an integer field. Text that is not a whole number, or is
// negative, is rejected.
func Int[D any, N ~int | ~int64](key, label string, at func(*D) *N) Field[D] {
	return Field[D]{
		Key:   key,
		Label: label,
		Kind:  KindInt,
		Get:   func(d *D) string { return strconv.FormatInt(int64(*at(d)), 10) },
		Set: func(d *D, v string) error {
			n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return invalid(label, "must be a whole number")
			}
			if n < 0 {
				return invalid(label, "cannot be negative")
			}
			*at(d) = N(n)
			return nil
		},
	}
}

// Max rejects whole numbers above limit before the draft is touched. Only
// meaningful on KindInt fields.
func (f Field[D]) Max(limit int64) Field[D] {
	set := f.Set
	f.Set = func(d *D, v string) error {
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil && n > limit {
			return invalid(f.Label, "cannot exceed %d", limit)
		}
		return set(d, v)
	}
	return f
}

// Float binds a decimal field. NaN, infinities and negative values are
// rejected so they never reach a payload.
func Float[D any](key, label string, at func(*D) *float64) Field[D] {
	return Field[D]{
		Key:   key,
		Label: label,
		Kind:  KindFloat,
		Get:   func(d *D) string { return strconv.FormatFloat(*at(d), 'f', -1, 64) },
		Set: func(d *D, v string) error {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
				return invalid(label, "must be a number")
			}
			if f < 0 {
				return invalid(label, "cannot be negative")
			}
			*at(d) = f
			return nil
		},
	}
}

// Bool binds a yes/no field. It accepts anything strconv.ParseBool does,
// plus "yes", "no", "on" and "off".
func Bool[D any](key, label string, at func(*D) *bool) Field[D] {
	return Field[D]{
		Key:     key,
		Label:   label,
		Kind:    KindBool,
		Options: []string{"true", "false"},
		Get:     func(d *D) string { return strconv.FormatBool(*at(d)) },
		Set: func(d *D, v string) error {
			b, err := parseBool(v)
			if err != nil {
				return invalid(label, "must be true or false")
			}
			*at(d) = b
			return nil
		},
	}
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "y", "on":
		return true, nil
	case "no", "n", "off":
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(v))
}

// Enum binds a field restricted to members.
func Enum[D any, E ~string](key, label string, members []E, at func(*D) *E) Field[D] {
	return Field[D]{
		Key:     key,
		Label:   label,
		Kind:    KindEnum,
		Options: domain.EnumStrings(members),
		Get:     func(d *D) string { return string(*at(d)) },
		Set: func(d *D, v string) error {
			e, err := domain.ParseEnum(strings.ToLower(label), v, members)
			if err != nil {
				return err
			}
			*at(d) = e
			return nil
		},
	}
}

// Choice binds a string field whose value must be one of options. Used for
// providers and other fixed lists that are plain strings in the entity.
func Choice[D any](key, label string, options []string, at func(*D) *string) Field[D] {
	return Field[D]{
		Key:     key,
		Label:   label,
		Kind:    KindEnum,
		Options: options,
		Get:     func(d *D) string { return *at(d) },
		Set: func(d *D, v string) error {
			v = strings.TrimSpace(v)
			i := slices.IndexFunc(options, func(o string) bool { return strings.EqualFold(o, v) })
			if i < 0 {
				return invalid(label, "must be one of: %s", strings.Join(options, ", "))
			}
			*at(d) = options[i]
			return nil
		},
	}
}

// Date binds an optional calendar date stored as YYYY-MM-DD text.
func Date[D any](key, label string, at func(*D) *string) Field[D] {
	return Field[D]{
		Key:   key,
		Label: label,
		Kind:  KindDate,
		Hint:  "YYYY-MM-DD",
		Get:   func(d *D) string { return *at(d) },
		Set: func(d *D, v string) error {
			v = strings.TrimSpace(v)
			if v != "" {
				if _, err := time.Parse(DateLayout, v); err != nil {
					return invalid(label, "must be a date in YYYY-MM-DD format")
				}
			}
			*at(d) = v
			return nil
		},
	}
}

// List binds a comma-separated list of strings. Blank and repeated entries
// are dropped.
func List[D any](key, label string, at func(*D) *[]string) Field[D] {
	return Field[D]{
		Key:   key,
		Label: label,
		Kind:  KindList,
		Hint:  "comma-separated",
		Get:   func(d *D) string { return strings.Join(*at(d), ", ") },
		Set: func(d *D, v string) error {
			*at(d) = SplitList(v)
			return nil
		},
	}
}

// SplitList splits comma-separated text into trimmed, unique, non-empty
// entries. It returns nil when nothing remains.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" || slices.Contains(out, part) {
			continue
		}
		out = append(out, part)
	}
	return out
}

// Package form is the modal create/edit view-model shared by every entity
// kind.
//
// A Model holds a draft D, a struct of editable fields, and the list of
// Fields that read and write it. The draft is rebuilt only by Open, so edits
// from a previous session never leak into the next one.
package form

import (
	"errors"
	"fmt"
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/domain"
)

var (
	// ErrSubmitting is returned by Submit while a previous submit is still
	// waiting for Done.
	ErrSubmitting = errors.New("save already in progress")

	// ErrClosed is returned when editing or submitting a closed form.
	ErrClosed = errors.New("form is not open")
)

// Mode distinguishes creating a new record from editing an existing one.
type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Model is the form view-model for drafts of type D.
type Model[D any] struct {
	fields []Field[D]

	open       bool
	mode       Mode
	target     string
	seed       D
	draft      D
	fieldErrs  map[string]string
	err        string
	submitting bool
}

// New returns a closed form over fields.
func New[D any](fields []Field[D]) *Model[D] {
	return &Model[D]{fields: fields, fieldErrs: map[string]string{}}
}

// Open (re)seeds the draft from seed and clears every error. target is the
// id of the record being edited, empty in create mode. It must be called on
// every closed-to-open transition and whenever the target changes.
func (m *Model[D]) Open(mode Mode, target string, seed D) {
	m.open = true
	m.mode = mode
	m.target = target
	m.seed = seed
	m.draft = seed
	m.fieldErrs = map[string]string{}
	m.err = ""
	m.submitting = false
}

// Set parses text into the named field. On a parse error the draft keeps
// its previous value and the error is recorded against the field.
func (m *Model[D]) Set(key, text string) error {
	if !m.open {
		return ErrClosed
	}
	f, ok := m.field(key)
	if !ok {
		return fmt.Errorf("%w: unknown field %q", domain.ErrInvalid, key)
	}

	next := m.draft
	if err := f.Set(&next, text); err != nil {
		m.fieldErrs[key] = describe(err)
		return err
	}
	m.draft = next
	delete(m.fieldErrs, key)
	return nil
}

// Submit checks required fields and outstanding field errors. On success
// it returns the draft and marks the form as submitting until Done.
func (m *Model[D]) Submit() (D, error) {
	var zero D
	if !m.open {
		return zero, ErrClosed
	}
	if m.submitting {
		return zero, ErrSubmitting
	}

	var problems []string
	for _, f := range m.fields {
		if msg, ok := m.fieldErrs[f.Key]; ok {
			problems = append(problems, msg)
			continue
		}
		if f.Required && strings.TrimSpace(f.Get(&m.draft)) == "" {
			msg := f.Label + " is required"
			m.fieldErrs[f.Key] = msg
			problems = append(problems, msg)
		}
	}
	if len(problems) > 0 {
		m.err = strings.Join(problems, "; ")
		return zero, fmt.Errorf("%w: %s", domain.ErrInvalid, m.err)
	}

	m.err = ""
	m.submitting = true
	return m.draft, nil
}

// Done finishes a submit. A nil err closes the form; otherwise the form
// stays open with the error's display message.
func (m *Model[D]) Done(err error) {
	m.submitting = false
	if err != nil {
		m.err = domain.Message(err)
		return
	}
	m.close()
}

// Cancel discards the draft and closes the form.
func (m *Model[D]) Cancel() { m.close() }

func (m *Model[D]) close() {
	var zero D
	m.open = false
	m.submitting = false
	m.target = ""
	m.seed = zero
	m.draft = zero
	m.fieldErrs = map[string]string{}
	m.err = ""
}

func (m *Model[D]) field(key string) (Field[D], bool) {
	for _, f := range m.fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field[D]{}, false
}

// describe strips the sentinel prefix from a field parse error.
func describe(err error) string {
	msg := err.Error()
	return strings.TrimPrefix(msg, domain.ErrInvalid.Error()+": ")
}

// Read-only accessors for rendering and tests.
func (m *Model[D]) IsOpen() bool       { return m.open }
func (m *Model[D]) Mode() Mode         { return m.mode }
func (m *Model[D]) Target() string     { return m.target }
func (m *Model[D]) Draft() D           { return m.draft }
func (m *Model[D]) Seed() D            { return m.seed }
func (m *Model[D]) Fields() []Field[D] { return m.fields }
func (m *Model[D]) Submitting() bool   { return m.submitting }
func (m *Model[D]) Err() string        { return m.err }

// Value renders the named field of the draft.
func (m *Model[D]) Value(key string) string {
	f, ok := m.field(key)
	if !ok {
		return ""
	}
	return f.Get(&m.draft)
}

// FieldErr returns the last error recorded for the named field.
func (m *Model[D]) FieldErr(key string) string { return m.fieldErrs[key] }

// Dirty reports whether any field differs from the seed.
func (m *Model[D]) Dirty() bool {
	for _, f := range m.fields {
		if f.Get(&m.draft) != f.Get(&m.seed) {
			return true
		}
	}
	return false
}

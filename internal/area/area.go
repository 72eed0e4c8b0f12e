// Package area describes one inventory section (servers, domains, ...) in
// terms the generic CLI and TUI layers can drive: how to list and filter
// it, which fields its form edits, and how to render a record.
package area

import (
	"fmt"
	"sort"

	"nathanbeddoewebdev/opsdeck/internal/detail"
	"nathanbeddoewebdev/opsdeck/internal/domain"
	"nathanbeddoewebdev/opsdeck/internal/form"
	"nathanbeddoewebdev/opsdeck/internal/listing"
	"nathanbeddoewebdev/opsdeck/internal/resource"
)

// FilterFlag is a server-side list filter exposed as a CLI flag.
type FilterFlag struct {
	Name  string
	Usage string
}

// Def binds an entity T, its create and update inputs C and U, and the
// form draft D.
type Def[T domain.Entity, C resource.Input, U resource.Patch, D any] struct {
	Kind  string
	Nouns resource.Nouns

	// NewList returns an empty list view-model with the area's search
	// fields, facets and columns.
	NewList func() *listing.List[T]

	// Fields are the editable fields of D, in display order.
	Fields []form.Field[D]

	// Defaults returns the draft used in create mode.
	Defaults func() D

	// FromEntity seeds an edit-mode draft.
	FromEntity func(T) D

	// ToCreate converts a submitted draft into a create request.
	ToCreate func(D) C

	// ToUpdate diffs draft against seed so only changed fields are sent.
	ToUpdate func(seed, draft D) U

	// Detail renders a record for the detail screen and `show`.
	Detail func(T) []detail.Row

	// Filters lists the server-side list filters. Filter builds the
	// request filter from flag values keyed by FilterFlag.Name.
	Filters []FilterFlag
	Filter  func(values map[string]string) (resource.Filter, error)
}

// NewForm returns a closed form over the area's fields.
func (d Def[T, C, U, D]) NewForm() *form.Model[D] {
	return form.New(d.Fields)
}

// OpenCreate opens f in create mode with the area defaults.
func (d Def[T, C, U, D]) OpenCreate(f *form.Model[D]) {
	f.Open(form.ModeCreate, "", d.Defaults())
}

// OpenEdit opens f in edit mode seeded from item.
func (d Def[T, C, U, D]) OpenEdit(f *form.Model[D], item T) {
	f.Open(form.ModeEdit, item.Key(), d.FromEntity(item))
}

// Field looks up a form field by key.
func (d Def[T, C, U, D]) Field(key string) (form.Field[D], bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return form.Field[D]{}, false
}

// Apply sets each value on a fresh form seeded by seed and submits it. It is
// the non-interactive counterpart of filling in the form by hand.
func (d Def[T, C, U, D]) Apply(mode form.Mode, target string, seed D, values map[string]string) (D, error) {
	f := d.NewForm()
	f.Open(mode, target, seed)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := f.Set(k, values[k]); err != nil {
			var zero D
			return zero, err
		}
	}
	return f.Submit()
}

// Validate checks that d is fully wired.
func (d Def[T, C, U, D]) Validate() error {
	switch {
	case d.Kind == "":
		return fmt.Errorf("area: kind is required")
	case d.NewList == nil, d.Defaults == nil, d.FromEntity == nil,
		d.ToCreate == nil, d.ToUpdate == nil, d.Detail == nil:
		return fmt.Errorf("area %s: missing view function", d.Kind)
	case d.Filter == nil:
		return fmt.Errorf("area %s: missing filter builder", d.Kind)
	}
	return nil
}

// Changed returns a pointer to next when it differs from prev, or nil.
// Used by ToUpdate implementations to build partial updates.
func Changed[V comparable](prev, next V) *V {
	if prev == next {
		return nil
	}
	return &next
}

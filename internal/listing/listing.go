// Package listing holds the in-memory collection behind a list screen and
// derives the subset visible under the current search text and facet
// filters.
//
// The collection changes only through Load (a full reload) and through Add,
// Replace and Remove, each applied once per successful API response. The
// visible subset is recomputed on every call to Visible.
package listing

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"nathanbeddoewebdev/opsdeck/internal/domain"
)

// All is the facet value that matches every item.
const All = "all"

// Facet is a categorical filter over one attribute.
type Facet[T any] struct {
	// Name keys the facet in SetFacet and in saved preferences.
	Name string
	// Label is shown in the UI.
	Label string
	// Value extracts the attribute compared against the facet selection.
	Value func(T) string
	// Options is the closed set of selectable values. When nil the options
	// are the distinct values present in the loaded items.
	Options []string
}

// Column is one table column of a list screen.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Config describes one entity kind's list screen.
type Config[T any] struct {
	// Search returns the fields matched by the search text.
	Search  func(T) []string
	Facets  []Facet[T]
	Columns []Column[T]
}

// List is the list/filter view-model for one entity kind.
type List[T domain.Entity] struct {
	cfg    Config[T]
	items  []T
	search string
	facets map[string]string
	err    string
}

// New returns an empty List with every facet set to All.
func New[T domain.Entity](cfg Config[T]) *List[T] {
	l := &List[T]{cfg: cfg, facets: make(map[string]string, len(cfg.Facets))}
	for _, f := range cfg.Facets {
		l.facets[f.Name] = All
	}
	return l
}

// Load replaces the whole collection after a successful list call and
// clears any recorded error.
func (l *List[T]) Load(items []T) {
	l.items = slices.Clone(items)
	l.err = ""
}

// Add appends a newly created item. An item whose id is already present
// replaces it instead.
func (l *List[T]) Add(item T) {
	if l.Replace(item) {
		return
	}
	l.items = append(l.items, item)
}

// Replace swaps in item for the element with the same id, leaving every
// other element untouched. It reports whether a match was found.
func (l *List[T]) Replace(item T) bool {
	i := l.indexOf(item.Key())
	if i < 0 {
		return false
	}
	l.items[i] = item
	return true
}

// Remove deletes the element with id. Removing an absent id is a no-op.
func (l *List[T]) Remove(id string) bool {
	i := l.indexOf(id)
	if i < 0 {
		return false
	}
	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// Get returns the element with id.
func (l *List[T]) Get(id string) (T, bool) {
	i := l.indexOf(id)
	if i < 0 {
		var zero T
		return zero, false
	}
	return l.items[i], true
}

func (l *List[T]) indexOf(id string) int {
	return slices.IndexFunc(l.items, func(it T) bool { return it.Key() == id })
}

// Items returns a copy of the whole collection.
func (l *List[T]) Items() []T { return slices.Clone(l.items) }

// Len returns the size of the whole collection.
func (l *List[T]) Len() int { return len(l.items) }

// Fail records the display message for a failed call. Items are kept.
func (l *List[T]) Fail(err error) { l.err = domain.Message(err) }

// ClearError drops the recorded failure message.
func (l *List[T]) ClearError() { l.err = "" }

// Err returns the recorded failure message, or "".
func (l *List[T]) Err() string { return l.err }

// SetSearch sets the free-text search.
func (l *List[T]) SetSearch(text string) { l.search = text }

// Search returns the free-text search.
func (l *List[T]) Search() string { return l.search }

// FacetDefs returns the configured facets in display order.
func (l *List[T]) FacetDefs() []Facet[T] { return slices.Clone(l.cfg.Facets) }

func (l *List[T]) facet(name string) (Facet[T], bool) {
	for _, f := range l.cfg.Facets {
		if f.Name == name {
			return f, true
		}
	}
	return Facet[T]{}, false
}

// SetFacet selects value for the named facet. Value must be All or, for a
// facet with a closed option set, one of its options.
func (l *List[T]) SetFacet(name, value string) error {
	f, ok := l.facet(name)
	if !ok {
		return fmt.Errorf("%w: unknown filter %q", domain.ErrInvalid, name)
	}
	if value == "" {
		value = All
	}
	if value != All && f.Options != nil && !slices.Contains(f.Options, value) {
		return fmt.Errorf("%w: unknown %s %q (valid: %s)", domain.ErrInvalid, name, value, strings.Join(f.Options, ", "))
	}
	l.facets[name] = value
	return nil
}

// Facet returns the current selection of the named facet.
func (l *List[T]) Facet(name string) string {
	if v, ok := l.facets[name]; ok {
		return v
	}
	return All
}

// Facets returns a copy of every facet selection.
func (l *List[T]) Facets() map[string]string {
	out := make(map[string]string, len(l.facets))
	for k, v := range l.facets {
		out[k] = v
	}
	return out
}

// Restore applies saved search text and facet selections, skipping any
// selection that is no longer valid.
func (l *List[T]) Restore(search string, facets map[string]string) {
	l.search = search
	for name, value := range facets {
		_ = l.SetFacet(name, value)
	}
}

// ResetFilters clears the search and sets every facet back to All.
func (l *List[T]) ResetFilters() {
	l.search = ""
	for name := range l.facets {
		l.facets[name] = All
	}
}

// Options lists the selectable values of the named facet, led by All.
func (l *List[T]) Options(name string) []string {
	f, ok := l.facet(name)
	if !ok {
		return nil
	}
	if f.Options != nil {
		return append([]string{All}, f.Options...)
	}

	seen := map[string]bool{}
	var values []string
	for _, it := range l.items {
		v := f.Value(it)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	sort.Strings(values)
	return append([]string{All}, values...)
}

// Matches reports whether item passes the search text and every facet.
func (l *List[T]) Matches(item T) bool {
	return l.matchesSearch(item) && l.matchesFacets(item)
}

func (l *List[T]) matchesSearch(item T) bool {
	if l.search == "" || l.cfg.Search == nil {
		return true
	}
	needle := strings.ToLower(l.search)
	for _, field := range l.cfg.Search(item) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func (l *List[T]) matchesFacets(item T) bool {
	for _, f := range l.cfg.Facets {
		want := l.facets[f.Name]
		if want != All && f.Value(item) != want {
			return false
		}
	}
	return true
}

// Visible returns the items passing the current filters, in collection
// order.
func (l *List[T]) Visible() []T {
	out := make([]T, 0, len(l.items))
	for _, it := range l.items {
		if l.Matches(it) {
			out = append(out, it)
		}
	}
	return out
}

// Filtered reports whether any search text or facet is active.
func (l *List[T]) Filtered() bool {
	if l.search != "" {
		return true
	}
	for _, v := range l.facets {
		if v != All {
			return true
		}
	}
	return false
}

// Headers returns the column headers.
func (l *List[T]) Headers() []string {
	out := make([]string, len(l.cfg.Columns))
	for i, c := range l.cfg.Columns {
		out[i] = c.Header
	}
	return out
}

// Row renders item as one table row.
func (l *List[T]) Row(item T) []string {
	out := make([]string, len(l.cfg.Columns))
	for i, c := range l.cfg.Columns {
		out[i] = c.Value(item)
	}
	return out
}

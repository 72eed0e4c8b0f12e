// Package detail tracks the fetch of a single record for a detail screen.
//
// Each fetch is tagged with a Ticket. A result is applied only if its ticket
// is still the latest one, so a slow response for a record the user has
// already navigated away from is dropped instead of overwriting the screen.
package detail

import (
	"errors"

	"nathanbeddoewebdev/opsdeck/internal/domain"
)

// State is the observable phase of a Loader.
type State int

const (
	Idle State = iota
	Loading
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ticket identifies one fetch.
type Ticket struct {
	Seq uint64
	ID  string
}

// Loader holds the record shown by a detail screen.
type Loader[T any] struct {
	seq      uint64
	id       string
	state    State
	item     T
	err      string
	notFound bool
}

// Begin starts a fetch of id and returns its ticket. Any previously loaded
// record is discarded, even when id is unchanged.
func (l *Loader[T]) Begin(id string) Ticket {
	var zero T
	l.seq++
	l.id = id
	l.state = Loading
	l.item = zero
	l.err = ""
	l.notFound = false
	return Ticket{Seq: l.seq, ID: id}
}

// Current reports whether t belongs to the latest fetch.
func (l *Loader[T]) Current(t Ticket) bool {
	return t.Seq == l.seq && t.ID == l.id
}

// Resolve applies the outcome of the fetch identified by t. It returns
// false, leaving the loader untouched, when t is stale.
func (l *Loader[T]) Resolve(t Ticket, item *T, err error) bool {
	if !l.Current(t) || l.state != Loading {
		return false
	}
	if err != nil || item == nil {
		if err == nil {
			err = domain.NewOpError(domain.ErrNotFound, "Record not found.", nil)
		}
		l.state = Failed
		l.err = domain.Message(err)
		l.notFound = errors.Is(err, domain.ErrNotFound)
		return true
	}
	l.state = Loaded
	l.item = *item
	return true
}

// Reset returns the loader to Idle. Outstanding tickets become stale.
func (l *Loader[T]) Reset() {
	var zero T
	l.seq++
	l.id = ""
	l.state = Idle
	l.item = zero
	l.err = ""
	l.notFound = false
}

// State and ID report the current load and the item it targets.
func (l *Loader[T]) State() State { return l.state }
func (l *Loader[T]) ID() string   { return l.id }

// Item returns the loaded record. ok is false unless the state is Loaded.
func (l *Loader[T]) Item() (item T, ok bool) {
	return l.item, l.state == Loaded
}

// Err returns the failure message shown in the Failed state.
func (l *Loader[T]) Err() string { return l.err }

// NotFound reports whether the last failure was a missing record rather
// than a transport or server error.
func (l *Loader[T]) NotFound() bool { return l.notFound }

// Row is one labelled value on a detail screen. An empty Label starts a new
// section titled by Value.
type Row struct {
	Label string
	Value string
}

// Section returns a section heading row.
func Section(title string) Row { return Row{Value: title} }

// IsSection reports whether r is a section heading.
func (r Row) IsSection() bool { return r.Label == "" }

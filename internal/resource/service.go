// Package resource provides the service layer shared by every inventory
// entity kind.
//
// A Service wraps a Backend (normally an *api.Resource) and adds input
// validation, failure normalisation into domain.OpError, structured logging
// and audit recording. It holds no copy of the collection: callers patch
// their own view of the data from the values it returns.
package resource

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"nathanbeddoewebdev/opsdeck/internal/auditlog"
	"nathanbeddoewebdev/opsdeck/internal/domain"

	"github.com/rs/zerolog"
)

// Backend performs the REST calls for one collection.
type Backend[T, C, U any] interface {
	List(ctx context.Context, query url.Values) ([]T, error)
	Get(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, opts C) (*T, error)
	Update(ctx context.Context, id string, opts U) (*T, error)
	Delete(ctx context.Context, id string) error
}

// Input is a create body that can check itself before it is sent.
type Input interface {
	Validate() error
}

// Patch is a partial-update body.
type Patch interface {
	Input
	IsEmpty() bool
}

// Filter is a set of exact-match list constraints.
type Filter interface {
	Query() (url.Values, error)
}

// Auditor persists mutation records. *auditlog.SQLiteRepository
// satisfies it.
type Auditor interface {
	Save(ctx context.Context, entry *auditlog.Entry) error
}

// Nouns name the entity kind in user-facing messages.
type Nouns struct {
	Singular string
	Plural   string
}

// Service is the business layer for one entity kind.
type Service[T domain.Entity, C Input, U Patch] struct {
	backend Backend[T, C, U]
	kind    string
	nouns   Nouns
	options
}

type options struct {
	audit  Auditor
	logger zerolog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*options)

// WithAudit records every create, update and delete to a.
func WithAudit(a Auditor) Option {
	return func(o *options) { o.audit = a }
}

// WithLogger sets the logger used for failures and mutations.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock overrides the clock used for audit timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{logger: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns a Service for the entity kind served by backend.
func New[T domain.Entity, C Input, U Patch](backend Backend[T, C, U], kind string, nouns Nouns, opts ...Option) *Service[T, C, U] {
	return &Service[T, C, U]{
		backend: backend,
		kind:    kind,
		nouns:   nouns,
		options: buildOptions(opts),
	}
}

// Kind returns the entity kind, e.g. "server".
func (s *Service[T, C, U]) Kind() string { return s.kind }

// Nouns returns the display names of the entity kind.
func (s *Service[T, C, U]) Nouns() Nouns { return s.nouns }

// List returns every entity matching filter. A nil filter is unconstrained.
// On failure no items are returned.
func (s *Service[T, C, U]) List(ctx context.Context, filter Filter) ([]T, error) {
	msg := fmt.Sprintf("Failed to load %s. Please check your connection.", s.nouns.Plural)

	var query url.Values
	if filter != nil {
		q, err := filter.Query()
		if err != nil {
			return nil, s.fail("list", domain.ErrLoad, msg, err)
		}
		query = q
	}

	items, err := s.backend.List(ctx, query)
	if err != nil {
		return nil, s.fail("list", domain.ErrLoad, msg, err)
	}
	return items, nil
}

// Get fetches one entity. An id the API does not know is reported with
// kind domain.ErrNotFound; any other failure with domain.ErrLoad.
func (s *Service[T, C, U]) Get(ctx context.Context, id string) (*T, error) {
	msg := fmt.Sprintf("Failed to load %s details.", s.nouns.Singular)

	if id == "" {
		return nil, s.fail("get", domain.ErrNotFound, msg, fmt.Errorf("%w: %s ID is required", domain.ErrInvalid, s.nouns.Singular))
	}

	item, err := s.backend.Get(ctx, id)
	if err != nil {
		kind := domain.ErrLoad
		if errors.Is(err, domain.ErrNotFound) {
			kind = domain.ErrNotFound
		}
		return nil, s.fail("get", kind, msg, err)
	}
	return item, nil
}

// Create validates opts and creates the entity. Invalid input fails with
// domain.ErrSave without sending a request.
func (s *Service[T, C, U]) Create(ctx context.Context, opts C) (*T, error) {
	msg := fmt.Sprintf("Failed to create %s. Please try again.", s.nouns.Singular)
	start := s.now()

	if err := opts.Validate(); err != nil {
		return nil, s.fail("create", domain.ErrSave, msg, err)
	}

	item, err := s.backend.Create(ctx, opts)
	if err != nil {
		s.record(ctx, "create", "", "", start, err)
		return nil, s.fail("create", domain.ErrSave, msg, err)
	}
	s.record(ctx, "create", (*item).Key(), (*item).Label(), start, nil)
	return item, nil
}

// Update validates opts and applies the partial update. Only the fields
// set in opts are sent.
func (s *Service[T, C, U]) Update(ctx context.Context, id string, opts U) (*T, error) {
	msg := fmt.Sprintf("Failed to update %s. Please try again.", s.nouns.Singular)
	start := s.now()

	if err := s.checkPatch(id, opts); err != nil {
		return nil, s.fail("update", domain.ErrSave, msg, err)
	}

	item, err := s.backend.Update(ctx, id, opts)
	if err != nil {
		s.record(ctx, "update", id, "", start, err)
		return nil, s.fail("update", domain.ErrSave, msg, err)
	}
	s.record(ctx, "update", id, (*item).Label(), start, nil)
	return item, nil
}

func (s *Service[T, C, U]) checkPatch(id string, opts U) error {
	if id == "" {
		return fmt.Errorf("%w: %s ID is required", domain.ErrInvalid, s.nouns.Singular)
	}
	if opts.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", domain.ErrInvalid)
	}
	return opts.Validate()
}

// Delete removes the entity. Deleting an id the API does not know is a
// failure like any other.
func (s *Service[T, C, U]) Delete(ctx context.Context, id string) error {
	msg := fmt.Sprintf("Failed to delete %s. Please try again.", s.nouns.Singular)
	start := s.now()

	if id == "" {
		return s.fail("delete", domain.ErrDelete, msg, fmt.Errorf("%w: %s ID is required", domain.ErrInvalid, s.nouns.Singular))
	}

	err := s.backend.Delete(ctx, id)
	s.record(ctx, "delete", id, "", start, err)
	if err != nil {
		return s.fail("delete", domain.ErrDelete, msg, err)
	}
	return nil
}

// Fail builds an *domain.OpError for op and logs the cause. Area services
// use it for operations beyond plain CRUD.
func (s *Service[T, C, U]) Fail(op string, kind error, message string, cause error) error {
	return s.fail(op, kind, message, cause)
}

// Record writes an audit entry for a mutation that began at start.
func (s *Service[T, C, U]) Record(ctx context.Context, op, id, name string, start time.Time, err error) {
	s.record(ctx, op, id, name, start, err)
}

// Now returns the service clock's current time.
func (s *Service[T, C, U]) Now() time.Time { return s.now() }

func (s *Service[T, C, U]) fail(op string, kind error, message string, cause error) error {
	s.logger.Warn().
		Err(cause).
		Str("kind", s.kind).
		Str("op", op).
		Msg(message)
	return domain.NewOpError(kind, message, cause)
}

func (s *Service[T, C, U]) record(ctx context.Context, op, id, name string, start time.Time, err error) {
	if err == nil {
		s.logger.Info().
			Str("kind", s.kind).
			Str("op", op).
			Str("id", id).
			Msg("mutation applied")
	}
	if s.audit == nil {
		return
	}

	meta := auditlog.MetadataFromContext(ctx)
	entry := &auditlog.Entry{
		Timestamp:    start.UTC(),
		Kind:         s.kind,
		Operation:    op,
		ResourceID:   id,
		ResourceName: name,
		Source:       meta.Source,
		Origin:       meta.Origin,
		Outcome:      auditlog.OutcomeSuccess,
		DurationMs:   s.now().Sub(start).Milliseconds(),
	}
	if len(meta.Args) > 0 {
		entry.Args = strings.Join(meta.Args, " ")
	}
	if err != nil {
		entry.Outcome = auditlog.OutcomeError
		entry.Detail = err.Error()
	}

	// Best-effort: the remote mutation has already happened.
	if aerr := s.audit.Save(context.WithoutCancel(ctx), entry); aerr != nil {
		s.logger.Warn().Err(aerr).Str("kind", s.kind).Str("op", op).Msg("failed to record audit entry")
	}
}

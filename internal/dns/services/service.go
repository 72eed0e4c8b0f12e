// Package services provides the domain and DNS record service layer.
//
// Domain CRUD is the shared resource.Service. DNS records are managed
// through the owning domain: every record operation returns the domain as
// stored after the change, and callers replace their copy with it.
package services

import (
	"context"
	"fmt"

	"nathanbeddoewebdev/opsdeck/internal/dns/domain"
	"nathanbeddoewebdev/opsdeck/internal/resource"
)

// Backend is the REST surface for domains and their records. *api.Domains
// satisfies it.
type Backend interface {
	resource.Backend[domain.Domain, domain.CreateOpts, domain.UpdateOpts]
	AddRecord(ctx context.Context, domainID string, opts domain.RecordOpts) (*domain.Domain, error)
	UpdateRecord(ctx context.Context, domainID, recordID string, opts domain.RecordUpdateOpts) (*domain.Domain, error)
	DeleteRecord(ctx context.Context, domainID, recordID string) (*domain.Domain, error)
}

// Service is the domain business layer.
type Service struct {
	*resource.Service[domain.Domain, domain.CreateOpts, domain.UpdateOpts]
	backend Backend
}

// New returns a Service backed by backend.
func New(backend Backend, opts ...resource.Option) *Service {
	return &Service{
		Service: resource.New[domain.Domain, domain.CreateOpts, domain.UpdateOpts](
			backend, domain.Kind, resource.Nouns{Singular: "domain", Plural: "domains"}, opts...),
		backend: backend,
	}
}

const (
	msgAddRecord    = "Failed to add DNS record. Please try again."
	msgUpdateRecord = "Failed to update DNS record. Please try again."
	msgDeleteRecord = "Failed to delete DNS record. Please try again."
)

// AddRecord validates and appends a DNS record to the domain.
func (s *Service) AddRecord(ctx context.Context, domainID string, opts domain.RecordOpts) (*domain.Domain, error) {
	start := s.Now()
	if domainID == "" {
		return nil, s.Fail("add-record", domain.ErrSave, msgAddRecord, errDomainID)
	}
	opts = normalizeRecordOpts(opts)
	if err := opts.Validate(); err != nil {
		return nil, s.Fail("add-record", domain.ErrSave, msgAddRecord, err)
	}

	d, err := s.backend.AddRecord(ctx, domainID, opts)
	if err != nil {
		s.Record(ctx, "add-record", domainID, recordLabel(opts.Type, opts.Name), start, err)
		return nil, s.Fail("add-record", domain.ErrSave, msgAddRecord, err)
	}
	s.Record(ctx, "add-record", domainID, recordLabel(opts.Type, opts.Name), start, nil)
	return d, nil
}

// UpdateRecord validates and applies a partial record update. When only
// one of type and value changes, the stored record is fetched so the
// combination can be checked before sending.
func (s *Service) UpdateRecord(ctx context.Context, domainID, recordID string, opts domain.RecordUpdateOpts) (*domain.Domain, error) {
	start := s.Now()
	if domainID == "" {
		return nil, s.Fail("update-record", domain.ErrSave, msgUpdateRecord, errDomainID)
	}
	if recordID == "" {
		return nil, s.Fail("update-record", domain.ErrSave, msgUpdateRecord, errRecordID)
	}
	opts = normalizeRecordUpdate(opts)
	if opts == (domain.RecordUpdateOpts{}) {
		return nil, s.Fail("update-record", domain.ErrSave, msgUpdateRecord, fmt.Errorf("%w: nothing to update", domain.ErrInvalid))
	}
	if err := opts.Validate(); err != nil {
		return nil, s.Fail("update-record", domain.ErrSave, msgUpdateRecord, err)
	}
	if err := s.checkMergedContent(ctx, domainID, recordID, opts); err != nil {
		return nil, s.Fail("update-record", domain.ErrSave, msgUpdateRecord, err)
	}

	d, err := s.backend.UpdateRecord(ctx, domainID, recordID, opts)
	s.Record(ctx, "update-record", domainID, recordID, start, err)
	if err != nil {
		return nil, s.Fail("update-record", domain.ErrSave, msgUpdateRecord, err)
	}
	return d, nil
}

func (s *Service) checkMergedContent(ctx context.Context, domainID, recordID string, opts domain.RecordUpdateOpts) error {
	switch {
	case opts.Type != nil && opts.Value != nil:
		return domain.CheckContent(*opts.Type, *opts.Value)
	case opts.Type == nil && opts.Value == nil:
		return nil
	}

	d, err := s.backend.Get(ctx, domainID)
	if err != nil {
		return err
	}
	current := d.Record(recordID)
	if current == nil {
		return fmt.Errorf("%w: DNS record %s", domain.ErrNotFound, recordID)
	}
	typ, value := current.Type, current.Value
	if opts.Type != nil {
		typ = *opts.Type
	}
	if opts.Value != nil {
		value = *opts.Value
	}
	return domain.CheckContent(typ, value)
}

// DeleteRecord removes a DNS record from the domain.
func (s *Service) DeleteRecord(ctx context.Context, domainID, recordID string) (*domain.Domain, error) {
	start := s.Now()
	if domainID == "" {
		return nil, s.Fail("delete-record", domain.ErrDelete, msgDeleteRecord, errDomainID)
	}
	if recordID == "" {
		return nil, s.Fail("delete-record", domain.ErrDelete, msgDeleteRecord, errRecordID)
	}

	d, err := s.backend.DeleteRecord(ctx, domainID, recordID)
	s.Record(ctx, "delete-record", domainID, recordID, start, err)
	if err != nil {
		return nil, s.Fail("delete-record", domain.ErrDelete, msgDeleteRecord, err)
	}
	return d, nil
}

var (
	errDomainID = fmt.Errorf("%w: domain ID is required", domain.ErrInvalid)
	errRecordID = fmt.Errorf("%w: record ID is required", domain.ErrInvalid)
)

func recordLabel(t domain.RecordType, name string) string {
	return string(t) + " " + name
}

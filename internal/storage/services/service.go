// Package services provides the storage bucket service layer. Capacity is
// sent in bytes; conversion from the gigabytes users type happens in views.
package services

import (
	"nathanbeddoewebdev/opsdeck/internal/resource"
	"nathanbeddoewebdev/opsdeck/internal/storage/domain"
)

// Service is the storage bucket business layer.
type Service = resource.Service[domain.Bucket, domain.CreateOpts, domain.UpdateOpts]

// Backend is the REST surface the service calls.
type Backend = resource.Backend[domain.Bucket, domain.CreateOpts, domain.UpdateOpts]

// New returns a Service backed by backend.
func New(backend Backend, opts ...resource.Option) *Service {
	return resource.New[domain.Bucket, domain.CreateOpts, domain.UpdateOpts](
		backend, domain.Kind, resource.Nouns{Singular: "storage bucket", Plural: "storage buckets"}, opts...)
}

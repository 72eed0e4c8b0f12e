// Package services provides the repository service layer.
package services

import (
	"nathanbeddoewebdev/opsdeck/internal/repo/domain"
	"nathanbeddoewebdev/opsdeck/internal/resource"
)

// Service is the repository business layer.
type Service = resource.Service[domain.Repository, domain.CreateOpts, domain.UpdateOpts]

// Backend is the REST surface the service calls.
type Backend = resource.Backend[domain.Repository, domain.CreateOpts, domain.UpdateOpts]

// New returns a Service backed by backend.
func New(backend Backend, opts ...resource.Option) *Service {
	return resource.New[domain.Repository, domain.CreateOpts, domain.UpdateOpts](
		backend, domain.Kind, resource.Nouns{Singular: "repository", Plural: "repositories"}, opts...)
}

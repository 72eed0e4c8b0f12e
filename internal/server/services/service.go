// Package services provides the server service layer.
package services

import (
	"nathanbeddoewebdev/opsdeck/internal/resource"
	"nathanbeddoewebdev/opsdeck/internal/server/domain"
)

// Service is the server business layer.
type Service = resource.Service[domain.Server, domain.CreateOpts, domain.UpdateOpts]

// Backend is the REST surface the service calls.
type Backend = resource.Backend[domain.Server, domain.CreateOpts, domain.UpdateOpts]

// New returns a Service backed by backend.
func New(backend Backend, opts ...resource.Option) *Service {
	return resource.New[domain.Server, domain.CreateOpts, domain.UpdateOpts](
		backend, domain.Kind, resource.Nouns{Singular: "server", Plural: "servers"}, opts...)
}

// Package services provides the email account service layer.
package services

import (
	"nathanbeddoewebdev/opsdeck/internal/email/domain"
	"nathanbeddoewebdev/opsdeck/internal/resource"
)

// Service is the email account business layer.
type Service = resource.Service[domain.Account, domain.CreateOpts, domain.UpdateOpts]

// Backend is the transport a Service delegates to.
type Backend = resource.Backend[domain.Account, domain.CreateOpts, domain.UpdateOpts]

// New returns a Service backed by backend.
func New(backend Backend, opts ...resource.Option) *Service {
	return resource.New[domain.Account, domain.CreateOpts, domain.UpdateOpts](
		backend, domain.Kind, resource.Nouns{Singular: "email account", Plural: "email accounts"}, opts...)
}

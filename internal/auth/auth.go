// Package auth stores API tokens for the cloud providers opsdeck can
// import from. Tokens live in the OS keychain; an environment variable
// per provider takes precedence.
package auth

import (
	"errors"
	"os"
	"slices"
	"strings"
)

// ServiceName is the keychain service tokens are stored under.
const ServiceName = "opsdeck"

// ErrTokenNotFound is returned when a provider has no stored token.
var ErrTokenNotFound = errors.New("auth token not found")

// Store persists one token per provider.
type Store interface {
	SetToken(provider string, token string) error
	GetToken(provider string) (string, error)
	DeleteToken(provider string) error
}

// Provider is a cloud provider opsdeck can import from.
type Provider struct {
	Name        string
	DisplayName string
	// EnvVar, when set in the environment, overrides the stored token.
	EnvVar string
}

var providers = []Provider{
	{Name: "hetzner", DisplayName: "Hetzner Cloud", EnvVar: "HCLOUD_TOKEN"},
}

// Providers returns every supported provider.
func Providers() []Provider { return slices.Clone(providers) }

// LookupProvider returns the provider with the given name, or false.
func LookupProvider(name string) (Provider, bool) {
	name = NormalizeProvider(name)
	for _, p := range providers {
		if p.Name == name {
			return p, true
		}
	}
	return Provider{}, false
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeProvider normalizes a provider name for consistent key lookup.
func NormalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

// Token returns the token for p: the environment variable when set,
// otherwise the stored one.
func Token(store Store, p Provider) (string, error) {
	if p.EnvVar != "" {
		if v := strings.TrimSpace(os.Getenv(p.EnvVar)); v != "" {
			return v, nil
		}
	}
	return store.GetToken(p.Name)
}

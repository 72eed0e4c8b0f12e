package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// KeyringStore keeps tokens in the OS keychain under one service name.
type KeyringStore struct {
	serviceName string
}

// NewKeyringStore returns a keychain store; an empty name falls back to ServiceName.
func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

// SetToken stores token for provider, replacing any earlier one.
func (k *KeyringStore) SetToken(provider string, token string) error {
	return keyring.Set(k.serviceName, NormalizeProvider(provider), token)
}

// GetToken returns ErrTokenNotFound when nothing is stored for provider.
func (k *KeyringStore) GetToken(provider string) (string, error) {
	token, err := keyring.Get(k.serviceName, NormalizeProvider(provider))
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrTokenNotFound
	}
	return token, err
}

// DeleteToken returns ErrTokenNotFound when nothing is stored for provider.
func (k *KeyringStore) DeleteToken(provider string) error {
	err := keyring.Delete(k.serviceName, NormalizeProvider(provider))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrTokenNotFound
	}
	return err
}

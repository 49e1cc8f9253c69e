// Package auth stores provider API tokens.
package auth

import (
	"errors"

	"nathanbeddoewebdev/tspec/internal/util"
)

// ServiceName is the keychain service tokens are stored under.
const ServiceName = "tspec"

var ErrTokenNotFound = errors.New("auth token not found")

// Store persists one API token per provider.
type Store interface {
	SetToken(provider string, token string) error
	GetToken(provider string) (string, error)
	DeleteToken(provider string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeProvider normalizes a provider name for consistent key lookup.
func NormalizeProvider(provider string) string {
	return util.NormalizeKey(provider)
}

// HasToken reports whether store holds a token for provider. Lookup
// failures other than a missing token are returned.
func HasToken(store Store, provider string) (bool, error) {
	_, err := store.GetToken(provider)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, ErrTokenNotFound) {
		return false, nil
	}
	return false, err
}

package auth

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// KeyringStore keeps tokens in the OS keychain (Keychain, Secret Service,
// Windows Credential Manager).
type KeyringStore struct {
	serviceName string
}

// NewKeyringStore returns a store under serviceName, or ServiceName if empty.
func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) SetToken(provider string, token string) error {
	if err := keyring.Set(k.serviceName, NormalizeProvider(provider), token); err != nil {
		return fmt.Errorf("failed to store %s token: %w", provider, err)
	}
	return nil
}

func (k *KeyringStore) GetToken(provider string) (string, error) {
	token, err := keyring.Get(k.serviceName, NormalizeProvider(provider))
	if err == nil {
		return token, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrTokenNotFound
	}
	return "", fmt.Errorf("failed to read %s token: %w", provider, err)
}

func (k *KeyringStore) DeleteToken(provider string) error {
	err := keyring.Delete(k.serviceName, NormalizeProvider(provider))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrTokenNotFound
	}
	return err
}

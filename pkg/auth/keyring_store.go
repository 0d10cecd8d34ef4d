package auth

import (
	"encoding/json"
	"fmt"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "wallpick"
	keyringKey     = "wallhaven_api_key"
)

// KeyringStore implements KeyStore using the system keychain
type KeyringStore struct{}

// NewKeyringStore creates a new keyring-based store, probing the keychain
// so an unavailable backend is rejected up front
func NewKeyringStore() (*KeyringStore, error) {
	testKey := "test_availability"
	if err := keyring.Set(keyringService, testKey, "test"); err != nil {
		return nil, fmt.Errorf("keyring not available: %w", err)
	}
	_ = keyring.Delete(keyringService, testKey)

	return &KeyringStore{}, nil
}

// Store saves the API key to the system keychain
func (k *KeyringStore) Store(key *APIKey) error {
	if key == nil || key.Key == "" {
		return ErrInvalidKey
	}

	data, err := json.Marshal(key)
	if err != nil {
		return fmt.Errorf("failed to marshal API key: %w", err)
	}

	if err := keyring.Set(keyringService, keyringKey, string(data)); err != nil {
		return fmt.Errorf("failed to store in keyring: %w", err)
	}

	return nil
}

// Retrieve gets the API key from the system keychain
func (k *KeyringStore) Retrieve() (*APIKey, error) {
	data, err := keyring.Get(keyringService, keyringKey)
	if err != nil {
		if err == keyring.ErrNotFound {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("failed to retrieve from keyring: %w", err)
	}

	var key APIKey
	if err := json.Unmarshal([]byte(data), &key); err != nil {
		return nil, fmt.Errorf("failed to unmarshal API key: %w", err)
	}

	return &key, nil
}

// Delete removes the API key from the system keychain
func (k *KeyringStore) Delete() error {
	if err := keyring.Delete(keyringService, keyringKey); err != nil {
		if err == keyring.ErrNotFound {
			return ErrKeyNotFound
		}
		return fmt.Errorf("failed to delete from keyring: %w", err)
	}
	return nil
}

// Exists checks whether an API key is stored in the keychain
func (k *KeyringStore) Exists() bool {
	_, err := keyring.Get(keyringService, keyringKey)
	return err == nil
}

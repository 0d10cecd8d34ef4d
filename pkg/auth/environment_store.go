package auth

import (
	"os"
	"time"
)

// EnvironmentStore implements KeyStore over the WALLPICK_API_KEY variable.
// It is read-only and sits last in the fallback chain.
type EnvironmentStore struct{}

// NewEnvironmentStore creates a new environment-based store
func NewEnvironmentStore() *EnvironmentStore {
	return &EnvironmentStore{}
}

// Store is not supported for environment variables
func (e *EnvironmentStore) Store(key *APIKey) error {
	return ErrStoreUnavailable
}

// Retrieve gets the API key from the environment
func (e *EnvironmentStore) Retrieve() (*APIKey, error) {
	key := os.Getenv("WALLPICK_API_KEY")
	if key == "" {
		return nil, ErrKeyNotFound
	}

	return &APIKey{
		Key:          key,
		LastModified: time.Now(),
	}, nil
}

// Delete is not supported for environment variables
func (e *EnvironmentStore) Delete() error {
	return ErrStoreUnavailable
}

// Exists checks whether the environment variable is set
func (e *EnvironmentStore) Exists() bool {
	return os.Getenv("WALLPICK_API_KEY") != ""
}

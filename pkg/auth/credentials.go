package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// APIKey is the stored wallhaven API key. Username records which account
// the key was derived from, when known.
type APIKey struct {
	Key          string    `json:"key"`
	Username     string    `json:"username,omitempty"`
	LastModified time.Time `json:"last_modified"`
}

// KeyStore is the interface for storing and retrieving the API key
type KeyStore interface {
	// Store saves the API key
	Store(key *APIKey) error

	// Retrieve gets the stored API key
	Retrieve() (*APIKey, error)

	// Delete removes the stored API key
	Delete() error

	// Exists checks whether an API key is stored
	Exists() bool
}

// Sentinel errors shared by the stores
var (
	ErrKeyNotFound      = errors.New("API key not found")
	ErrInvalidKey       = errors.New("invalid API key")
	ErrStoreUnavailable = errors.New("credential store unavailable")
)

// Manager handles API key storage with fallback mechanisms
type Manager struct {
	stores []KeyStore
}

// NewManager creates a credential manager with the available storage
// backends: system keychain first, encrypted file second, environment as a
// read-only last resort.
func NewManager() (*Manager, error) {
	var stores []KeyStore

	keyringStore, err := NewKeyringStore()
	if err == nil {
		stores = append(stores, keyringStore)
	}

	configDir, err := getConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config directory: %w", err)
	}

	encryptedStore, err := NewEncryptedFileStore(filepath.Join(configDir, "credentials.enc"))
	if err != nil {
		return nil, fmt.Errorf("failed to create encrypted store: %w", err)
	}
	stores = append(stores, encryptedStore)

	stores = append(stores, NewEnvironmentStore())

	return &Manager{stores: stores}, nil
}

// NewManagerWithStores creates a manager over explicit stores, for tests
func NewManagerWithStores(stores ...KeyStore) *Manager {
	return &Manager{stores: stores}
}

// Store saves the API key using the first available store
func (m *Manager) Store(key *APIKey) error {
	if key == nil || key.Key == "" {
		return ErrInvalidKey
	}

	key.LastModified = time.Now()

	var lastErr error
	for _, store := range m.stores {
		if err := store.Store(key); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}

	if lastErr != nil {
		return fmt.Errorf("failed to store API key: %w", lastErr)
	}
	return errors.New("no available credential stores")
}

// Retrieve gets the API key from the first store that has one
func (m *Manager) Retrieve() (*APIKey, error) {
	for _, store := range m.stores {
		if key, err := store.Retrieve(); err == nil && key != nil {
			return key, nil
		}
	}
	return nil, ErrKeyNotFound
}

// Delete removes the API key from every store that holds it
func (m *Manager) Delete() error {
	deleted := false
	for _, store := range m.stores {
		if err := store.Delete(); err == nil {
			deleted = true
		}
	}
	if !deleted {
		return ErrKeyNotFound
	}
	return nil
}

// Exists reports whether any store holds an API key
func (m *Manager) Exists() bool {
	for _, store := range m.stores {
		if store.Exists() {
			return true
		}
	}
	return false
}

// getConfigDir returns the platform config directory for wallpick
func getConfigDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			return "", errors.New("APPDATA not set")
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(home, "Library", "Application Support")
	default:
		baseDir = os.Getenv("XDG_CONFIG_HOME")
		if baseDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(home, ".config")
		}
	}

	configDir := filepath.Join(baseDir, "wallpick")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

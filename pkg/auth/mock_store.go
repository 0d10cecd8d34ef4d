package auth

import "sync"

// MockStore is an in-memory KeyStore for tests
type MockStore struct {
	mu       sync.Mutex
	key      *APIKey
	storeErr error
}

// NewMockStore creates an empty in-memory store
func NewMockStore() *MockStore {
	return &MockStore{}
}

// FailStores makes every Store call fail with the given error
func (m *MockStore) FailStores(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.storeErr = err
}

// Store saves the API key in memory
func (m *MockStore) Store(key *APIKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.storeErr != nil {
		return m.storeErr
	}
	if key == nil || key.Key == "" {
		return ErrInvalidKey
	}

	copied := *key
	m.key = &copied
	return nil
}

// Retrieve returns the stored API key
func (m *MockStore) Retrieve() (*APIKey, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.key == nil {
		return nil, ErrKeyNotFound
	}
	copied := *m.key
	return &copied, nil
}

// Delete removes the stored API key
func (m *MockStore) Delete() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.key == nil {
		return ErrKeyNotFound
	}
	m.key = nil
	return nil
}

// Exists reports whether a key is stored
func (m *MockStore) Exists() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.key != nil
}

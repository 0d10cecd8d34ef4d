package auth

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerStoreAndRetrieve(t *testing.T) {
	store := NewMockStore()
	manager := NewManagerWithStores(store)

	require.NoError(t, manager.Store(&APIKey{Key: "abc123", Username: "alice"}))

	key, err := manager.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, "abc123", key.Key)
	assert.Equal(t, "alice", key.Username)
	assert.False(t, key.LastModified.IsZero())
}

func TestManagerRejectsEmptyKey(t *testing.T) {
	manager := NewManagerWithStores(NewMockStore())

	assert.ErrorIs(t, manager.Store(nil), ErrInvalidKey)
	assert.ErrorIs(t, manager.Store(&APIKey{}), ErrInvalidKey)
}

func TestManagerFallsBackToSecondStore(t *testing.T) {
	broken := NewMockStore()
	broken.FailStores(ErrStoreUnavailable)
	working := NewMockStore()

	manager := NewManagerWithStores(broken, working)
	require.NoError(t, manager.Store(&APIKey{Key: "abc123"}))

	assert.False(t, broken.Exists())
	assert.True(t, working.Exists())

	key, err := manager.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, "abc123", key.Key)
}

func TestManagerRetrieveNotFound(t *testing.T) {
	manager := NewManagerWithStores(NewMockStore(), NewMockStore())

	_, err := manager.Retrieve()
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestManagerDelete(t *testing.T) {
	first := NewMockStore()
	second := NewMockStore()
	require.NoError(t, first.Store(&APIKey{Key: "abc"}))
	require.NoError(t, second.Store(&APIKey{Key: "abc"}))

	manager := NewManagerWithStores(first, second)
	require.NoError(t, manager.Delete())

	assert.False(t, first.Exists())
	assert.False(t, second.Exists())
	assert.ErrorIs(t, manager.Delete(), ErrKeyNotFound)
}

func TestEncryptedFileStoreRoundTrip(t *testing.T) {
	os.Setenv("WALLPICK_PASSPHRASE", "test-passphrase")
	defer os.Unsetenv("WALLPICK_PASSPHRASE")

	path := filepath.Join(t.TempDir(), "credentials.enc")
	store, err := NewEncryptedFileStore(path)
	require.NoError(t, err)

	assert.False(t, store.Exists())
	_, err = store.Retrieve()
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Store(&APIKey{Key: "secret-key", Username: "alice"}))
	assert.True(t, store.Exists())

	key, err := store.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, "secret-key", key.Key)
	assert.Equal(t, "alice", key.Username)

	// The key must not appear in the file as plaintext
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "secret-key")

	require.NoError(t, store.Delete())
	assert.False(t, store.Exists())
}

func TestEncryptedFileStoreWrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.enc")

	os.Setenv("WALLPICK_PASSPHRASE", "first")
	store, err := NewEncryptedFileStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Store(&APIKey{Key: "secret"}))

	os.Setenv("WALLPICK_PASSPHRASE", "second")
	defer os.Unsetenv("WALLPICK_PASSPHRASE")

	other, err := NewEncryptedFileStore(path)
	require.NoError(t, err)

	_, err = other.Retrieve()
	assert.Error(t, err)
}

func TestEnvironmentStore(t *testing.T) {
	store := NewEnvironmentStore()

	os.Unsetenv("WALLPICK_API_KEY")
	assert.False(t, store.Exists())
	_, err := store.Retrieve()
	assert.ErrorIs(t, err, ErrKeyNotFound)

	os.Setenv("WALLPICK_API_KEY", "env-key")
	defer os.Unsetenv("WALLPICK_API_KEY")

	assert.True(t, store.Exists())
	key, err := store.Retrieve()
	require.NoError(t, err)
	assert.Equal(t, "env-key", key.Key)

	assert.ErrorIs(t, store.Store(&APIKey{Key: "x"}), ErrStoreUnavailable)
	assert.ErrorIs(t, store.Delete(), ErrStoreUnavailable)
}

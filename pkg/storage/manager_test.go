package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wallpick/pkg/errors"
)

func TestNewManagerCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "wallpapers")

	manager, err := NewManager(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, filepath.IsAbs(manager.Dir()))
}

func TestNewManagerEmptyDir(t *testing.T) {
	_, err := NewManager("")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeIO))
}

func TestSaveWritesExactBytes(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	require.NoError(t, err)

	content := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46}
	path, err := manager.Save(bytes.NewReader(content), "img.jpg")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(manager.Dir(), "img.jpg"), path)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, written)
}

func TestSaveOverwritesExistingFile(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = manager.Save(bytes.NewReader([]byte("first")), "img.jpg")
	require.NoError(t, err)

	path, err := manager.Save(bytes.NewReader([]byte("second")), "img.jpg")
	require.NoError(t, err)

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), written)

	entries, err := os.ReadDir(manager.Dir())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no leftover temp files")
}

func TestSaveRejectsPathTraversal(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = manager.Save(bytes.NewReader([]byte("x")), "../escape.jpg")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeIO))

	_, err = manager.Save(bytes.NewReader([]byte("x")), "")
	assert.Error(t, err)
}

func TestSaveUnwritableDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getuid() == 0 {
		t.Skip("permission bits are not enforced here")
	}

	dir := t.TempDir()
	manager, err := NewManager(dir)
	require.NoError(t, err)

	require.NoError(t, os.Chmod(dir, 0555))
	defer os.Chmod(dir, 0755)

	_, err = manager.Save(bytes.NewReader([]byte("x")), "img.jpg")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeIO))
}

func TestExists(t *testing.T) {
	manager, err := NewManager(t.TempDir())
	require.NoError(t, err)

	assert.False(t, manager.Exists("img.jpg"))

	_, err = manager.Save(bytes.NewReader([]byte("x")), "img.jpg")
	require.NoError(t, err)
	assert.True(t, manager.Exists("img.jpg"))
}

package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"wallpick/pkg/errors"
)

// Manager handles saving downloaded images into the configured directory
type Manager struct {
	outputDir string
}

// NewManager creates a storage manager rooted at outputDir, creating the
// directory if it does not exist
func NewManager(outputDir string) (*Manager, error) {
	if outputDir == "" {
		return nil, errors.New(errors.ErrorTypeIO, "output directory is empty")
	}

	abs, err := filepath.Abs(outputDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrorTypeIO, err, "failed to resolve output directory")
	}

	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, errors.Wrap(errors.ErrorTypeIO, err,
			fmt.Sprintf("failed to create output directory %s", abs))
	}

	return &Manager{outputDir: abs}, nil
}

// Dir returns the absolute output directory
func (m *Manager) Dir() string {
	return m.outputDir
}

// Save streams r into filename inside the output directory and returns the
// absolute path of the written file. The write goes through a temporary
// file and a rename, so a partially downloaded image never lands under the
// final name. Saving the same filename again overwrites the previous file.
func (m *Manager) Save(r io.Reader, filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", errors.Newf(errors.ErrorTypeIO, "invalid file name %q", filename)
	}

	target := filepath.Join(m.outputDir, filename)

	tmp, err := os.CreateTemp(m.outputDir, filename+".*.tmp")
	if err != nil {
		return "", errors.Wrap(errors.ErrorTypeIO, err, "failed to create temporary file")
	}

	_, err = io.Copy(tmp, r)
	closeErr := tmp.Close()

	if err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrap(errors.ErrorTypeIO, err, "failed to write image data")
	}
	if closeErr != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrap(errors.ErrorTypeIO, closeErr, "failed to close file")
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return "", errors.Wrap(errors.ErrorTypeIO, err, "failed to move image into place")
	}

	return target, nil
}

// Exists reports whether a file with the given name is already present
func (m *Manager) Exists(filename string) bool {
	_, err := os.Stat(filepath.Join(m.outputDir, filename))
	return err == nil
}

//go:build linux

package autostart

import (
	"os"
	"path/filepath"

	"wallpick/pkg/errors"
)

func entryPath(e Entry) (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(errors.ErrorTypeIO, err, "cannot locate the home directory")
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "autostart", e.Name+".desktop"), nil
}

// Install writes the XDG autostart entry and returns its path
func Install(e Entry) (string, error) {
	path, err := entryPath(e)
	if err != nil {
		return "", err
	}
	if err := installFile(path, desktopEntry(e)); err != nil {
		return "", err
	}
	return path, nil
}

// Remove deletes the autostart entry if present
func Remove(e Entry) error {
	path, err := entryPath(e)
	if err != nil {
		return err
	}
	return removeFile(path)
}

// Installed reports whether the autostart entry exists
func Installed(e Entry) (bool, string) {
	path, err := entryPath(e)
	if err != nil {
		return false, ""
	}
	return fileExists(path), path
}

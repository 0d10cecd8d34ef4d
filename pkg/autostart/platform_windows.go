//go:build windows

package autostart

import (
	"os"
	"path/filepath"

	"wallpick/pkg/errors"
)

func entryPath(e Entry) (string, error) {
	appData := os.Getenv("APPDATA")
	if appData == "" {
		return "", errors.New(errors.ErrorTypeIO, "APPDATA is not set")
	}
	return filepath.Join(appData,
		"Microsoft", "Windows", "Start Menu", "Programs", "Startup",
		e.Name+".bat"), nil
}

// Install writes a batch file into the Startup folder and returns its path
func Install(e Entry) (string, error) {
	path, err := entryPath(e)
	if err != nil {
		return "", err
	}
	if err := installFile(path, startupScript(e)); err != nil {
		return "", err
	}
	return path, nil
}

// Remove deletes the Startup folder entry if present
func Remove(e Entry) error {
	path, err := entryPath(e)
	if err != nil {
		return err
	}
	return removeFile(path)
}

// Installed reports whether the Startup folder entry exists
func Installed(e Entry) (bool, string) {
	path, err := entryPath(e)
	if err != nil {
		return false, ""
	}
	return fileExists(path), path
}

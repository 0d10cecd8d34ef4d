//go:build darwin

package autostart

import (
	"os"
	"path/filepath"

	"wallpick/pkg/errors"
)

func entryPath(e Entry) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrorTypeIO, err, "cannot locate the home directory")
	}
	return filepath.Join(home, "Library", "LaunchAgents", "com."+e.Name+".login.plist"), nil
}

// Install writes the launchd agent and returns its path. The agent takes
// effect at the next login; no launchctl load is attempted here.
func Install(e Entry) (string, error) {
	path, err := entryPath(e)
	if err != nil {
		return "", err
	}
	if err := installFile(path, launchAgentPlist(e)); err != nil {
		return "", err
	}
	return path, nil
}

// Remove deletes the launchd agent if present
func Remove(e Entry) error {
	path, err := entryPath(e)
	if err != nil {
		return err
	}
	return removeFile(path)
}

// Installed reports whether the launchd agent exists
func Installed(e Entry) (bool, string) {
	path, err := entryPath(e)
	if err != nil {
		return false, ""
	}
	return fileExists(path), path
}

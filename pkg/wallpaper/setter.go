// Package wallpaper applies a downloaded image as the desktop background.
//
// Each OS family has its own mechanism: a user32 call on Windows, gsettings
// on GNOME-heritage Linux desktops, and Finder via osascript on macOS. The
// implementation for the running platform is selected once at startup by
// New; a desktop environment without a known mechanism is a terminal
// unsupported-platform error, there is no fallback.
package wallpaper

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"wallpick/pkg/errors"
	"wallpick/pkg/logger"
)

// Setter applies a local image file as the desktop wallpaper
type Setter interface {
	// Set applies the image at the given path. The file must already exist.
	Set(path string) error

	// Name identifies the mechanism, for logging
	Name() string
}

// CommandRunner executes an external command. Tests substitute a recorder.
type CommandRunner func(name string, args ...string) error

// ExecRunner runs the command and surfaces stderr in the returned error
func ExecRunner(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("%s: %s: %w", name, msg, err)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// gnomeHeritageDesktops are the Linux desktops sharing the GNOME settings
// schema layout. KDE has no gsettings background schema and is explicitly
// unsupported.
var gnomeHeritageDesktops = map[string]bool{
	"gnome":    true,
	"cinnamon": true,
	"mate":     true,
}

// DetectLinuxDesktop normalizes the desktop environment name from the
// session environment. getenv is injectable for tests; pass os.Getenv.
func DetectLinuxDesktop(getenv func(string) string) string {
	de := getenv("DESKTOP_SESSION")
	if de == "" {
		de = getenv("XDG_CURRENT_DESKTOP")
	}

	de = strings.ToLower(de)

	// XDG_CURRENT_DESKTOP can be a colon list like "ubuntu:GNOME"
	if idx := strings.LastIndex(de, ":"); idx >= 0 {
		de = de[idx+1:]
	}

	// Cinnamon sessions report X-Cinnamon
	de = strings.TrimPrefix(de, "x-")

	return de
}

// GSettingsSetter sets the background on GNOME-heritage desktops
type GSettingsSetter struct {
	desktop string
	runner  CommandRunner
	logger  logger.Logger
}

// NewGSettingsSetter creates a setter for the given desktop environment.
// Unsupported desktops fail here, before anything is executed.
func NewGSettingsSetter(desktop string, runner CommandRunner, log logger.Logger) (*GSettingsSetter, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	if runner == nil {
		runner = ExecRunner
	}

	if desktop == "kde" || desktop == "plasma" {
		return nil, errors.New(errors.ErrorTypeUnsupportedPlatform,
			"KDE is not supported; set the wallpaper manually")
	}
	if !gnomeHeritageDesktops[desktop] {
		return nil, errors.Newf(errors.ErrorTypeUnsupportedPlatform,
			"desktop environment %q is not supported", desktop)
	}

	return &GSettingsSetter{desktop: desktop, runner: runner, logger: log}, nil
}

// Name identifies the mechanism
func (s *GSettingsSetter) Name() string {
	return "gsettings/" + s.desktop
}

// Set applies the wallpaper via the desktop's background schema
func (s *GSettingsSetter) Set(path string) error {
	abs, err := ensureFile(path)
	if err != nil {
		return err
	}

	schema := fmt.Sprintf("org.%s.desktop.background", s.desktop)
	uri := "file://" + abs

	s.logger.DebugWithFields("setting wallpaper", map[string]interface{}{
		"mechanism": s.Name(),
		"schema":    schema,
		"uri":       uri,
	})

	if err := s.runner("gsettings", "set", schema, "picture-uri", uri); err != nil {
		return errors.Wrap(errors.ErrorTypeUnsupportedPlatform, err,
			"gsettings failed to set the background")
	}

	return nil
}

// FinderSetter sets the background on macOS through Finder
type FinderSetter struct {
	runner CommandRunner
	logger logger.Logger
}

// NewFinderSetter creates the macOS setter
func NewFinderSetter(runner CommandRunner, log logger.Logger) *FinderSetter {
	if log == nil {
		log = logger.GetLogger()
	}
	if runner == nil {
		runner = ExecRunner
	}
	return &FinderSetter{runner: runner, logger: log}
}

// Name identifies the mechanism
func (s *FinderSetter) Name() string {
	return "osascript/finder"
}

// Set applies the wallpaper via AppleScript
func (s *FinderSetter) Set(path string) error {
	abs, err := ensureFile(path)
	if err != nil {
		return err
	}

	script := fmt.Sprintf(`tell application "Finder" to set desktop picture to POSIX file %q`, abs)

	s.logger.DebugWithFields("setting wallpaper", map[string]interface{}{
		"mechanism": s.Name(),
		"path":      abs,
	})

	if err := s.runner("osascript", "-e", script); err != nil {
		return errors.Wrap(errors.ErrorTypeUnsupportedPlatform, err,
			"osascript failed to set the desktop picture")
	}

	return nil
}

// ensureFile resolves path to an absolute path and verifies it exists
func ensureFile(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrorTypeIO, err, "failed to resolve wallpaper path")
	}
	if _, err := os.Stat(abs); err != nil {
		return "", errors.Wrap(errors.ErrorTypeIO, err,
			fmt.Sprintf("wallpaper file %s does not exist", abs))
	}
	return abs, nil
}

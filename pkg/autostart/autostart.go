// Package autostart installs the program into the platform's login-time
// startup mechanism, so a fresh wallpaper is applied at the start of every
// desktop session. Linux uses an XDG autostart desktop entry, macOS a launchd
// agent, Windows a script in the Startup folder.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wallpick/pkg/errors"
)

// Entry describes the command to run at login
type Entry struct {
	// Name identifies the entry; it becomes the file name
	Name string
	// Exec is the absolute path of the executable
	Exec string
	// Args are passed to the executable verbatim
	Args []string
}

// CurrentEntry builds an Entry for the running executable
func CurrentEntry(args ...string) (Entry, error) {
	exe, err := os.Executable()
	if err != nil {
		return Entry{}, errors.Wrap(errors.ErrorTypeIO, err, "cannot resolve the executable path")
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return Entry{}, errors.Wrap(errors.ErrorTypeIO, err, "cannot resolve the executable path")
	}
	return Entry{Name: "wallpick", Exec: exe, Args: args}, nil
}

func (e Entry) commandLine() string {
	parts := []string{quoteIfNeeded(e.Exec)}
	for _, a := range e.Args {
		parts = append(parts, quoteIfNeeded(a))
	}
	return strings.Join(parts, " ")
}

func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, " \t\"") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}

// desktopEntry renders the XDG autostart file
func desktopEntry(e Entry) string {
	return fmt.Sprintf(`[Desktop Entry]
Type=Application
Name=%s
Exec=%s
X-GNOME-Autostart-enabled=true
Comment=Set a random wallpaper at login
`, e.Name, e.commandLine())
}

// launchAgentPlist renders the launchd agent definition
func launchAgentPlist(e Entry) string {
	var args strings.Builder
	fmt.Fprintf(&args, "\t\t<string>%s</string>\n", e.Exec)
	for _, a := range e.Args {
		fmt.Fprintf(&args, "\t\t<string>%s</string>\n", a)
	}

	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>Label</key>
	<string>com.%s.login</string>
	<key>ProgramArguments</key>
	<array>
%s	</array>
	<key>RunAtLoad</key>
	<true/>
</dict>
</plist>
`, e.Name, args.String())
}

// startupScript renders the Windows Startup folder batch file
func startupScript(e Entry) string {
	return fmt.Sprintf("@echo off\r\nstart \"\" %s\r\n", e.commandLine())
}

func installFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrorTypeIO, err, "cannot create the autostart directory")
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errors.Wrap(errors.ErrorTypeIO, err, "cannot write the autostart entry")
	}
	return nil
}

func removeFile(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(errors.ErrorTypeIO, err, "cannot remove the autostart entry")
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

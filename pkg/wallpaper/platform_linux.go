//go:build linux

package wallpaper

import (
	"os"

	"wallpick/pkg/logger"
)

// New selects the wallpaper mechanism for the detected desktop environment
func New(log logger.Logger) (Setter, error) {
	desktop := DetectLinuxDesktop(os.Getenv)
	return NewGSettingsSetter(desktop, nil, log)
}

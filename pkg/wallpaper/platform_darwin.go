//go:build darwin

package wallpaper

import (
	"wallpick/pkg/logger"
)

// New selects the wallpaper mechanism for macOS
func New(log logger.Logger) (Setter, error) {
	return NewFinderSetter(nil, log), nil
}

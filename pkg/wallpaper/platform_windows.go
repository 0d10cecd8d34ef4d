//go:build windows

package wallpaper

import (
	"syscall"
	"unsafe"

	"wallpick/pkg/errors"
	"wallpick/pkg/logger"
)

// Pulled from winuser.h
const (
	spiSetDeskWallpaper = 0x0014
	spifUpdateINIFile   = 0x0001
	spifSendChange      = 0x0002
)

var (
	user32                = syscall.NewLazyDLL("user32.dll")
	systemParametersInfoW = user32.NewProc("SystemParametersInfoW")
)

// New selects the wallpaper mechanism for Windows
func New(log logger.Logger) (Setter, error) {
	if log == nil {
		log = logger.GetLogger()
	}
	return &user32Setter{logger: log}, nil
}

// user32Setter applies the wallpaper through SystemParametersInfoW
type user32Setter struct {
	logger logger.Logger
}

func (s *user32Setter) Name() string {
	return "user32/SystemParametersInfoW"
}

func (s *user32Setter) Set(path string) error {
	abs, err := ensureFile(path)
	if err != nil {
		return err
	}

	pathPtr, err := syscall.UTF16PtrFromString(abs)
	if err != nil {
		return errors.Wrap(errors.ErrorTypeIO, err, "wallpaper path is not valid UTF-16")
	}

	s.logger.DebugWithFields("setting wallpaper", map[string]interface{}{
		"mechanism": s.Name(),
		"path":      abs,
	})

	ret, _, callErr := systemParametersInfoW.Call(
		uintptr(spiSetDeskWallpaper),
		0,
		uintptr(unsafe.Pointer(pathPtr)),
		uintptr(spifUpdateINIFile|spifSendChange),
	)
	if ret == 0 {
		return errors.Wrap(errors.ErrorTypeUnsupportedPlatform, callErr,
			"SystemParametersInfoW failed to set the wallpaper")
	}

	return nil
}

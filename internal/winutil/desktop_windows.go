//go:build windows

package winutil

import (
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/lxn/win"
)

// DesktopDir returns the current user's desktop directory.
func DesktopDir() (string, error) {
	buf := make([]uint16, win.MAX_PATH)
	if !win.SHGetSpecialFolderPath(0, &buf[0], win.CSIDL_DESKTOPDIRECTORY, false) {
		return "", errors.New("winutil: desktop directory unavailable")
	}
	return syscall.UTF16ToString(buf), nil
}

//go:build windows

package winutil

import (
	"golang.org/x/sys/windows"
)

// ListSearchableDrives returns the roots of fixed and removable drives,
// e.g. `C:\`. Optical and network drives are left out.
func ListSearchableDrives() []string {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		return nil
	}
	out := make([]string, 0, 8)
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		root := string(rune('A'+i)) + `:\`
		p, err := windows.UTF16PtrFromString(root)
		if err != nil {
			continue
		}
		switch windows.GetDriveType(p) {
		case windows.DRIVE_FIXED, windows.DRIVE_REMOVABLE:
			out = append(out, root)
		}
	}
	return out
}

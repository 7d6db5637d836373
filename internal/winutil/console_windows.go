//go:build windows

package winutil

import (
	"os"

	"golang.org/x/sys/windows"
)

const attachParentProcess = ^uint32(0)

var (
	kernel32          = windows.NewLazySystemDLL("kernel32.dll")
	procAttachConsole = kernel32.NewProc("AttachConsole")
	procFreeConsole   = kernel32.NewProc("FreeConsole")
)

// EnsureConsole attaches a windowsgui build to the console of the shell that
// started it, so CLI output is visible. It does nothing without a parent
// console.
func EnsureConsole() {
	if procAttachConsole.Find() != nil {
		return
	}
	if r1, _, _ := procAttachConsole.Call(uintptr(attachParentProcess)); r1 == 0 {
		return
	}
	if h, err := windows.GetStdHandle(windows.STD_OUTPUT_HANDLE); err == nil && h != 0 && h != windows.InvalidHandle {
		os.Stdout = os.NewFile(uintptr(h), "stdout")
	}
	if h, err := windows.GetStdHandle(windows.STD_ERROR_HANDLE); err == nil && h != 0 && h != windows.InvalidHandle {
		os.Stderr = os.NewFile(uintptr(h), "stderr")
	}
}

// DetachConsole drops the console a double-clicked console-subsystem build
// gets, so closing it does not take the window down.
func DetachConsole() {
	if procFreeConsole.Find() != nil {
		return
	}
	_, _, _ = procFreeConsole.Call()
}

// Package winutil wraps the few Win32 calls the app needs: console
// attach/detach for the CLI, the desktop folder, drive roots and
// Explorer's select-in-folder. Off Windows only the console and reveal
// helpers exist, as no-ops or errors.
package winutil

import "github.com/cockroachdb/errors"

// ErrUnsupported is returned by helpers that need a Windows shell.
var ErrUnsupported = errors.New("winutil: not supported on this platform")

//go:build !windows

package winutil

import (
	"github.com/cockroachdb/errors"
)

func EnsureConsole() {}

func DetachConsole() {}

func RevealInExplorer(path string) error {
	return errors.Wrapf(ErrUnsupported, "reveal %s", path)
}

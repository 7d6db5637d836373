//go:build windows

package winutil

import (
	"os/exec"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// RevealInExplorer opens an Explorer window with path selected.
func RevealInExplorer(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	cmd := exec.Command("explorer.exe", "/select,"+path)
	return errors.Wrapf(cmd.Start(), "reveal %s", path)
}

//go:build !windows

package app

import "github.com/cockroachdb/errors"

var errUIUnsupported = errors.New("the UI is only available on Windows")

func RunUI(SearchOptions) error {
	return errUIUnsupported
}

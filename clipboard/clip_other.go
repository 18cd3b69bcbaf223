//go:build !darwin && !linux

// Package clipboard copies recovered plaintexts to the system clipboard.
package clipboard

import (
	"errors"
	"runtime"
)

// WriteString reports an error; the clipboard is not supported here.
func WriteString(s string) error {
	return errors.New("clipboard is not supported on " + runtime.GOOS)
}

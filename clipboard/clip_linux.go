// Package clipboard copies recovered plaintexts to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// WriteString attempts to copy the given string to the system clipboard.
// Under Wayland it uses wl-copy; under X11 it uses xsel.
func WriteString(s string) error {
	var cmd *exec.Cmd
	switch {
	case os.Getenv("WAYLAND_DISPLAY") != "":
		cmd = exec.Command("wl-copy")
	case os.Getenv("DISPLAY") != "":
		cmd = exec.Command("xsel", "--clipboard", "--input")
	default:
		// Neither tool works without a display.
		return errors.New("unable to copy to clipboard (no display)")
	}
	cmd.Stdin = strings.NewReader(s)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", cmd.Args[0], err)
	}
	return nil
}

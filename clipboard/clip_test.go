//go:build linux

package clipboard_test

import (
	"testing"

	"github.com/creachadair/hashfish/clipboard"
)

func TestNoDisplay(t *testing.T) {
	t.Setenv("WAYLAND_DISPLAY", "")
	t.Setenv("DISPLAY", "")
	if err := clipboard.WriteString("secret"); err == nil {
		t.Error("WriteString without a display: got nil, want error")
	} else {
		t.Logf("WriteString: got expected error: %v", err)
	}
}

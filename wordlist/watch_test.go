package wordlist_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/creachadair/hashfish/wordlist"
)

func TestWatcher(t *testing.T) {
	path := writeFile(t, "watched.txt", []byte("alpha\n"))

	w, err := wordlist.NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	calls := make(chan int, 4)
	var n int
	errc := make(chan error, 1)
	go func() {
		errc <- w.Run(ctx, func() (bool, error) {
			n++
			calls <- n
			return n >= 2, nil
		})
	}()

	if got := <-calls; got != 1 {
		t.Fatalf("First call: got %d, want 1", got)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("Open for append: %v", err)
	}
	f.WriteString("bravo\n")
	f.Close()

	select {
	case got := <-calls:
		if got != 2 {
			t.Errorf("Second call: got %d, want 2", got)
		}
	case <-ctx.Done():
		t.Fatal("Timed out waiting for the watcher to re-run")
	}
	if err := <-errc; err != nil {
		t.Errorf("Run: unexpected error: %v", err)
	}
}

func TestWatcherDoneImmediately(t *testing.T) {
	path := writeFile(t, "done.txt", []byte("alpha\n"))
	w, err := wordlist.NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher: unexpected error: %v", err)
	}
	var calls int
	if err := w.Run(context.Background(), func() (bool, error) {
		calls++
		return true, nil
	}); err != nil {
		t.Errorf("Run: unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("Got %d calls, want 1", calls)
	}
}

func TestWatcherMissing(t *testing.T) {
	w, err := wordlist.NewWatcher(t.TempDir() + "/nonesuch.txt")
	if err == nil {
		w.Close()
		t.Fatal("NewWatcher: got nil error, want error")
	}
	t.Logf("NewWatcher: got expected error: %v", err)
}

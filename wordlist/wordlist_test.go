package wordlist_test

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/creachadair/hashfish/wordlist"
	gocmp "github.com/google/go-cmp/cmp"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// readAll returns all the candidates from r as strings.
func readAll(t *testing.T, r *wordlist.Reader) []string {
	t.Helper()
	var out []string
	for r.Next() {
		out = append(out, string(r.Candidate()))
	}
	if err := r.Err(); err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	return out
}

func TestReader(t *testing.T) {
	tests := []struct {
		name, input string
		want        []string
	}{
		{"Empty", "", nil},
		{"OneLine", "hello\n", []string{"hello"}},
		{"NoTerminator", "hello\nworld", []string{"hello", "world"}},
		{"CRLF", "hello\r\nworld\r\n", []string{"hello", "world"}},
		{"Whitespace", "  admin  \n\tpass word\t\n", []string{"admin", "pass word"}},
		{"EmptyLines", "a\n\n   \nb\n", []string{"a", "", "", "b"}},
		{"BlankOnly", "\n", []string{""}},
		{"Binary", "\x00\xff\xfe\n", []string{"\x00\xff\xfe"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := readAll(t, wordlist.New(strings.NewReader(tc.input)))
			if diff := gocmp.Diff(got, tc.want); diff != "" {
				t.Errorf("Candidates (-got, +want):\n%s", diff)
			}
		})
	}
}

func TestLongLine(t *testing.T) {
	long := strings.Repeat("x", 300_000)
	input := "short\n" + long + "\nlast\n"

	// One byte at a time exercises the accumulation path across reads too.
	r := wordlist.New(iotest.OneByteReader(strings.NewReader(input)))
	got := readAll(t, r)
	if len(got) != 3 {
		t.Fatalf("Got %d candidates, want 3", len(got))
	}
	if got[1] != long {
		t.Errorf("Long line: got %d bytes, want %d", len(got[1]), len(long))
	}
	if got[2] != "last" {
		t.Errorf("Last line: got %q, want %q", got[2], "last")
	}
}

func TestLineNumbers(t *testing.T) {
	r := wordlist.New(strings.NewReader("a\nb\n\nc\n"))
	var lines []int
	for line, c := range r.All() {
		lines = append(lines, line)
		if string(c) == "c" && line != r.Line() {
			t.Errorf("Line() = %d, want %d", r.Line(), line)
		}
	}
	if diff := gocmp.Diff(lines, []int{1, 2, 3, 4}); diff != "" {
		t.Errorf("Lines (-got, +want):\n%s", diff)
	}
}

func TestAllStops(t *testing.T) {
	r := wordlist.New(strings.NewReader("a\nb\nc\nd\n"))
	for _, c := range r.All() {
		if string(c) == "b" {
			break
		}
	}
	// The sequence is not restartable, but it resumes where it stopped.
	if diff := gocmp.Diff(readAll(t, r), []string{"c", "d"}); diff != "" {
		t.Errorf("Remaining (-got, +want):\n%s", diff)
	}
	if r.Next() {
		t.Error("Next after end: got true, want false")
	}
	if c := r.Candidate(); c != nil {
		t.Errorf("Candidate after end: got %q, want nil", c)
	}
}

func TestReadError(t *testing.T) {
	errFault := errors.New("disk on fire")
	src := io.MultiReader(
		strings.NewReader("one\ntwo\nthr"),
		iotest.ErrReader(errFault),
	)
	r := wordlist.New(src)

	var got []string
	for r.Next() {
		got = append(got, string(r.Candidate()))
	}
	if diff := gocmp.Diff(got, []string{"one", "two"}); diff != "" {
		t.Errorf("Candidates before failure (-got, +want):\n%s", diff)
	}

	err := r.Err()
	if !errors.Is(err, errFault) {
		t.Fatalf("Err: got %v, want %v", err, errFault)
	}
	var werr *wordlist.Error
	if !errors.As(err, &werr) {
		t.Fatalf("Err: got %T, want *wordlist.Error", err)
	}
	if werr.Line != 3 {
		t.Errorf("Error line: got %d, want 3", werr.Line)
	}
	if r.Next() {
		t.Error("Next after failure: got true, want false")
	}
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("Write test file: %v", err)
	}
	return path
}

const testWords = "alpha\nbravo\n  charlie \n\ndelta\n"

var wantWords = []string{"alpha", "bravo", "charlie", "", "delta"}

func TestOpen(t *testing.T) {
	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	w.Write([]byte(testWords))
	if err := w.Close(); err != nil {
		t.Fatalf("Compress gzip: %v", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		t.Fatalf("New zstd writer: %v", err)
	}
	zst := enc.EncodeAll([]byte(testWords), nil)
	enc.Close()

	tests := []struct {
		name string
		data []byte
	}{
		{"words.txt", []byte(testWords)},
		{"words.txt.gz", gz.Bytes()},
		{"words.gz.bin", gz.Bytes()}, // detected by content
		{"words.txt.zst", zst},
		{"words.zbin", zst}, // detected by content
		{"empty.txt", nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.name, tc.data)
			r, err := wordlist.Open(path)
			if err != nil {
				t.Fatalf("Open: unexpected error: %v", err)
			}
			defer r.Close()
			if r.Path() != path {
				t.Errorf("Path: got %q, want %q", r.Path(), path)
			}

			got := readAll(t, r)
			want := wantWords
			if tc.data == nil {
				want = nil
			}
			if diff := gocmp.Diff(got, want); diff != "" {
				t.Errorf("Candidates (-got, +want):\n%s", diff)
			}
			if err := r.Close(); err != nil {
				t.Errorf("Close: unexpected error: %v", err)
			}
		})
	}
}

func TestOpenErrors(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nonesuch.txt")
		r, err := wordlist.Open(path)
		if err == nil {
			r.Close()
			t.Fatal("Open: got nil error, want error")
		}
		var werr *wordlist.Error
		if !errors.As(err, &werr) || werr.Path != path {
			t.Errorf("Open: got %v, want *wordlist.Error for %q", err, path)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Open: got %v, want ErrNotExist", err)
		}
	})

	t.Run("BadGzip", func(t *testing.T) {
		path := writeFile(t, "bogus.gz", []byte("this is not gzip data\n"))
		r, err := wordlist.Open(path)
		if err == nil {
			r.Close()
			t.Fatal("Open: got nil error, want error")
		}
		t.Logf("Open: got expected error: %v", err)
	})
}

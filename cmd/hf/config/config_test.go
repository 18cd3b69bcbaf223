package config

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func TestChooseAlgorithm(t *testing.T) {
	tests := []struct {
		name, target, want string
	}{
		{"sha1", "", "sha1"},
		{"SHA3-256", strings.Repeat("0", 64), "sha3-256"},
		{"", strings.Repeat("a", 32), "md5"},
		{"", strings.Repeat("a", 40), "sha1"},
		{"", strings.Repeat("a", 56), "sha224"},
		{"", strings.Repeat("a", 64), "sha256"},
		{"", strings.Repeat("a", 96), "sha384"},
		{"", strings.Repeat("a", 128), "sha512"},
		{"", strings.Repeat("a", 16), "xxh64"},
		{"", " " + strings.Repeat("a", 40) + "\n", "sha1"},
		{"", "abc", "sha256"}, // odd length
		{"", "", "sha256"},
		{"", strings.Repeat("a", 10), "sha256"}, // no algorithm of that size
	}
	for _, tc := range tests {
		got, err := chooseAlgorithm(tc.name, tc.target)
		if err != nil {
			t.Errorf("chooseAlgorithm(%q, len %d): unexpected error: %v", tc.name, len(tc.target), err)
		} else if got.Name != tc.want {
			t.Errorf("chooseAlgorithm(%q, len %d): got %q, want %q", tc.name, len(tc.target), got.Name, tc.want)
		}
	}

	if got, err := chooseAlgorithm("crc16", ""); err == nil {
		t.Errorf("chooseAlgorithm(crc16): got %v, want error", got)
	}
}

func TestChooseAlgorithmWarns(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	// Several algorithms produce 16-byte digests.
	got, err := chooseAlgorithm("", strings.Repeat("a", 32))
	if err != nil {
		t.Fatalf("chooseAlgorithm: unexpected error: %v", err)
	}
	if got.Name != "md5" {
		t.Errorf("chooseAlgorithm: got %q, want md5", got.Name)
	}
	if msg := buf.String(); !strings.Contains(msg, "WARNING:") || !strings.Contains(msg, "--alg") {
		t.Errorf("Log output: got %q, want a warning naming --alg", msg)
	}

	// Only xxh64 produces 8-byte digests.
	buf.Reset()
	if _, err := chooseAlgorithm("", strings.Repeat("a", 16)); err != nil {
		t.Fatalf("chooseAlgorithm: unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Log output: got %q, want none", buf.String())
	}

	// An explicit name is never a guess.
	buf.Reset()
	if _, err := chooseAlgorithm("ntlm", strings.Repeat("a", 32)); err != nil {
		t.Fatalf("chooseAlgorithm: unexpected error: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Log output: got %q, want none", buf.String())
	}
}

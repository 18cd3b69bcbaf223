package wordlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Open opens the wordlist at path for reading. If path is "-", the wordlist
// is read from standard input. Wordlists compressed with gzip or zstd are
// detected by their contents or file suffix and decompressed on the fly.
//
// The caller must Close the reader to release the underlying file.
func Open(path string) (*Reader, error) {
	rc, err := openSource(path)
	if err != nil {
		return nil, &Error{Path: path, Err: err}
	}
	r := New(rc)
	r.path = path
	r.closer = rc
	return r, nil
}

// multiReadCloser closes each of its closers in order when it is closed.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func openSource(path string) (io.ReadCloser, error) {
	var f io.ReadCloser
	if path == "-" {
		f = io.NopCloser(os.Stdin)
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		f = fh
	}

	br := bufio.NewReaderSize(f, readBufferSize)
	sig, _ := br.Peek(len(zstdMagic)) // a short or empty file is not compressed
	switch {
	case bytes.HasPrefix(sig, gzipMagic) || strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(br)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return &multiReadCloser{Reader: gz, closers: []io.Closer{gz, f}}, nil

	case bytes.HasPrefix(sig, zstdMagic) || strings.HasSuffix(path, ".zst"):
		zd, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("zstd: %w", err)
		}
		zr := zd.IOReadCloser()
		return &multiReadCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{f}}, nil
}

// Package wordlist streams candidate plaintexts from a newline-delimited
// wordlist without loading the whole list into memory.
//
// Each line of the input is one candidate. The line terminator ("\n" or
// "\r\n") and any surrounding whitespace are removed before the candidate is
// reported. Lines that are empty after trimming are still reported, as empty
// candidates, so that line numbers always match the input.
package wordlist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
)

// An Error reports a failure to open or read a wordlist.
type Error struct {
	Path string // the path of the wordlist, or "" if unknown
	Line int    // the line being read when the failure occurred (0 on open)
	Err  error  // the underlying error
}

func (e *Error) Error() string {
	var where string
	if e.Path != "" {
		where = fmt.Sprintf(" %q", e.Path)
	}
	if e.Line > 0 {
		return fmt.Sprintf("read wordlist%s at line %d: %v", where, e.Line, e.Err)
	}
	return fmt.Sprintf("open wordlist%s: %v", where, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

const readBufferSize = 64 << 10

// A Reader is a lazy, finite sequence of candidates read from an input.
// A Reader cannot be restarted; once Next reports false, the sequence is
// finished and Err reports whether it ended because of an error.
type Reader struct {
	path   string
	br     *bufio.Reader
	closer io.Closer

	buf  []byte // raw contents of the current line
	cur  []byte // trimmed view of buf
	line int
	err  error
	done bool
}

// New returns a Reader that streams candidates from r. The caller remains
// responsible for closing r, if that is required.
func New(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReaderSize(r, readBufferSize)}
}

// Next advances to the next candidate, and reports whether one is available.
// It returns false at the end of the input or if a read fails; in the latter
// case Err reports the failure.
func (r *Reader) Next() bool {
	if r.done {
		return false
	}
	r.buf = r.buf[:0]
	for {
		frag, err := r.br.ReadSlice('\n')
		r.buf = append(r.buf, frag...)
		if err == nil {
			break
		} else if errors.Is(err, bufio.ErrBufferFull) {
			continue // a long line; keep accumulating
		} else if err == io.EOF {
			r.done = true
			if len(r.buf) == 0 {
				r.cur = nil
				return false
			}
			break // final line without a terminator
		}

		// A read failure discards any partial line.
		r.done = true
		r.cur = nil
		r.err = &Error{Path: r.path, Line: r.line + 1, Err: err}
		return false
	}
	r.line++
	r.cur = bytes.TrimSpace(r.buf)
	return true
}

// Candidate returns the current candidate. The contents of the slice are
// valid only until the next call to Next.
func (r *Reader) Candidate() []byte { return r.cur }

// Line returns the 1-based line number of the current candidate.
func (r *Reader) Line() int { return r.line }

// Err returns the error, if any, that ended the sequence.  It returns nil if
// the input was consumed successfully.
func (r *Reader) Err() error { return r.err }

// Path returns the path the reader was opened from, or "".
func (r *Reader) Path() string { return r.path }

// All returns an iterator over the line numbers and candidates remaining in
// r. Consult Err after the loop to check for a read failure.
func (r *Reader) All() iter.Seq2[int, []byte] {
	return func(yield func(int, []byte) bool) {
		for r.Next() {
			if !yield(r.line, r.cur) {
				return
			}
		}
	}
}

// Close releases the resources held by r. Subsequent calls to Next report
// false. It is safe to call Close more than once.
func (r *Reader) Close() error {
	r.done = true
	if r.closer == nil {
		return nil
	}
	c := r.closer
	r.closer = nil
	return c.Close()
}

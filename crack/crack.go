// Package crack implements a dictionary preimage search: given a target
// digest and a sequence of candidate plaintexts, it finds the first candidate
// whose digest matches the target.
//
// A search has three possible outcomes:
//
//   - A match: Search returns a Result with Found set, reporting the first
//     matching candidate in input order and its line number.
//   - Exhaustion: the input ran out with no match. This is not an error;
//     Search returns a Result with Found unset and a nil error.
//   - Failure: the input could not be read. Search returns an *Error of kind
//     SourceIO and no result.
package crack

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/creachadair/hashfish/digest"
	"github.com/creachadair/hashfish/wordlist"
)

// ErrNotFound is matched by errors of kind Exhausted.
var ErrNotFound = errors.New("no match found")

// Kind identifies the category of an Error.
type Kind int

const (
	// InvalidTarget means the target digest is malformed for the algorithm.
	InvalidTarget Kind = iota + 1

	// SourceIO means the wordlist could not be opened or read.
	SourceIO

	// Exhausted means the wordlist was read completely with no match.
	Exhausted
)

func (k Kind) String() string {
	switch k {
	case InvalidTarget:
		return "invalid target"
	case SourceIO:
		return "source I/O"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the concrete type of errors reported by this package.
type Error struct {
	Kind   Kind
	Path   string // the wordlist path, if known
	Target string // the target digest, if known
	Err    error  // the underlying cause, if any
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidTarget:
		return fmt.Sprintf("invalid target %q: %v", e.Target, e.Err)
	case SourceIO:
		if _, ok := e.Err.(*wordlist.Error); ok {
			return e.Err.Error() // it already names the wordlist
		} else if e.Path == "" {
			return fmt.Sprintf("read wordlist: %v", e.Err)
		}
		return fmt.Sprintf("read wordlist %q: %v", e.Path, e.Err)
	case Exhausted:
		if e.Path == "" {
			return fmt.Sprintf("no match for %s", e.Target)
		}
		return fmt.Sprintf("no match for %s in %q", e.Target, e.Path)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	if e.Kind == Exhausted && e.Err == nil {
		return ErrNotFound
	}
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// A Target is a validated target digest. The zero value is not valid; use
// ParseTarget to construct a Target.
type Target struct {
	hex  string // lowercase
	size int    // digest size in bytes
}

// ParseTarget validates s as a hex-encoded digest for alg. Surrounding
// whitespace is ignored, and either case is accepted. The resulting Target
// is normalized to lowercase.
func ParseTarget(s string, alg digest.Algorithm) (Target, error) {
	s = strings.TrimSpace(s)
	if len(s) != alg.HexLen() {
		return Target{}, &Error{
			Kind:   InvalidTarget,
			Target: s,
			Err:    fmt.Errorf("length is %d, %s wants %d hex digits", len(s), alg.Name, alg.HexLen()),
		}
	}
	if _, err := digest.ParseHex(s); err != nil {
		return Target{}, &Error{Kind: InvalidTarget, Target: s, Err: err}
	}
	return Target{hex: strings.ToLower(s), size: alg.Size}, nil
}

// MustParseTarget is as ParseTarget, but panics on error.
func MustParseTarget(s string, alg digest.Algorithm) Target {
	t, err := ParseTarget(s, alg)
	if err != nil {
		panic(err)
	}
	return t
}

// String returns the lowercase hex encoding of t.
func (t Target) String() string { return t.hex }

// Size reports the size in bytes of the target digest.
func (t Target) Size() int { return t.size }

// IsValid reports whether t is a valid target.
func (t Target) IsValid() bool { return t.size > 0 && len(t.hex) == 2*t.size }

// Result is the outcome of a search that did not fail.
type Result struct {
	Found     bool          // whether a match was found
	Candidate string        // the matching candidate, if Found
	Line      int           // the 1-based line number of the match, if Found
	Tried     int64         // the number of candidates hashed
	Elapsed   time.Duration // wall-clock time spent searching
}

// Err returns nil if r is a match. Otherwise it returns an *Error of kind
// Exhausted describing the target and path searched, for callers that
// prefer to treat exhaustion as an error.
func (r Result) Err(target Target, path string) error {
	if r.Found {
		return nil
	}
	return &Error{Kind: Exhausted, Path: path, Target: target.String()}
}

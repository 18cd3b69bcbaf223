package crack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"hash"
	"math"
	"sync/atomic"
	"time"

	"github.com/creachadair/hashfish/digest"
	"github.com/creachadair/hashfish/wordlist"
	"golang.org/x/sync/errgroup"
)

// A Source is a sequence of candidate plaintexts. It is satisfied by
// *wordlist.Reader.
type Source interface {
	// Next advances to the next candidate and reports whether there is one.
	Next() bool

	// Candidate returns the current candidate. The engine does not retain
	// the slice past the next call to Next.
	Candidate() []byte

	// Err reports the error, if any, that ended the sequence.
	Err() error
}

// progressInterval is the number of candidates between calls to the
// Progress callback, and between context checks in the sequential engine.
var progressInterval int64 = 1 << 16

// DefaultBatchSize is the number of candidates per work unit used by the
// parallel engine when BatchSize is not set.
const DefaultBatchSize = 1024

// An Engine searches candidate sequences for a preimage of a target digest.
// The zero value is not ready for use; the Algorithm must be set.
type Engine struct {
	// Algorithm is the hash function used to digest candidates.
	Algorithm digest.Algorithm

	// Workers is the number of concurrent hashing workers. If Workers <= 1
	// the search is sequential. Results do not depend on Workers, except
	// for the Tried count.
	Workers int

	// BatchSize is the number of candidates handed to a worker at a time.
	// If BatchSize <= 0, DefaultBatchSize is used.
	BatchSize int

	// If set, Progress is called periodically with the number of candidates
	// hashed so far. When Workers > 1, it may be called concurrently.
	Progress func(tried int64)
}

// Search reads candidates from src until it finds one whose digest matches
// target or src is exhausted. It returns the first match in input order.
//
// If src reports an error before a match is found, Search returns an *Error
// of kind SourceIO. If ctx ends before the search completes, Search returns
// the context error.
func (e *Engine) Search(ctx context.Context, src Source, target Target) (Result, error) {
	if !e.Algorithm.IsValid() {
		return Result{}, errors.New("no hash algorithm specified")
	}
	if !target.IsValid() || target.Size() != e.Algorithm.Size {
		return Result{}, &Error{
			Kind:   InvalidTarget,
			Target: target.String(),
			Err:    fmt.Errorf("target size is %d bytes, %s wants %d", target.Size(), e.Algorithm.Name, e.Algorithm.Size),
		}
	}

	start := time.Now()
	var res Result
	var err error
	if e.Workers > 1 {
		res, err = e.searchParallel(ctx, src, target)
	} else {
		res, err = e.searchSequential(ctx, src, target)
	}
	if err != nil {
		return Result{}, err
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

// SearchFile opens the wordlist at path and searches it with e. The wordlist
// is closed before SearchFile returns.
func SearchFile(ctx context.Context, e *Engine, path string, target Target) (Result, error) {
	r, err := wordlist.Open(path)
	if err != nil {
		return Result{}, &Error{Kind: SourceIO, Path: path, Target: target.String(), Err: err}
	}
	defer r.Close()
	return e.Search(ctx, r, target)
}

// sourceError wraps a read failure from a source.
func sourceError(err error, target Target) error {
	e := &Error{Kind: SourceIO, Target: target.String(), Err: err}
	var werr *wordlist.Error
	if errors.As(err, &werr) {
		e.Path = werr.Path
	}
	return e
}

// A matcher compares candidate digests to a target. Each goroutine uses its
// own matcher, so the hash state and buffers are never shared.
type matcher struct {
	h    hash.Hash
	sum  []byte
	hex  []byte
	want []byte
}

func newMatcher(alg digest.Algorithm, target Target) *matcher {
	return &matcher{
		h:    alg.New(),
		sum:  make([]byte, 0, alg.Size),
		hex:  make([]byte, 0, alg.HexLen()),
		want: []byte(target.String()),
	}
}

// match reports whether the digest of c matches the target.
func (m *matcher) match(c []byte) bool {
	m.h.Reset()
	m.h.Write(c)
	m.sum = m.h.Sum(m.sum[:0])
	m.hex = digest.AppendHex(m.hex[:0], m.sum)
	return bytes.Equal(m.hex, m.want)
}

func (e *Engine) searchSequential(ctx context.Context, src Source, target Target) (Result, error) {
	m := newMatcher(e.Algorithm, target)

	var res Result
	for src.Next() {
		res.Tried++
		if c := src.Candidate(); m.match(c) {
			res.Found = true
			res.Candidate = string(c)
			res.Line = int(res.Tried)
			return res, nil
		}
		if res.Tried%progressInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			if e.Progress != nil {
				e.Progress(res.Tried)
			}
		}
	}
	if err := src.Err(); err != nil {
		return Result{}, sourceError(err, target)
	}
	return res, nil
}

// A batch is a run of consecutive candidates, packed into one buffer.
type batch struct {
	first int    // line number of the first candidate
	data  []byte // concatenated candidates
	ends  []int  // ends[i] is the end offset of candidate i in data
}

func (b *batch) add(c []byte) {
	b.data = append(b.data, c...)
	b.ends = append(b.ends, len(b.data))
}

func (b *batch) len() int { return len(b.ends) }

func (b *batch) at(i int) []byte {
	var start int
	if i > 0 {
		start = b.ends[i-1]
	}
	return b.data[start:b.ends[i]]
}

// storeMin atomically lowers v to n, if n is smaller.
func storeMin(v *atomic.Int64, n int64) {
	for {
		cur := v.Load()
		if n >= cur || v.CompareAndSwap(cur, n) {
			return
		}
	}
}

// searchParallel partitions the source into batches of consecutive lines and
// hashes them concurrently. A single producer owns src. The only state shared
// among workers is the lowest matching line number seen so far; each worker
// records its own match separately, and the lowest line wins after all the
// workers finish.
func (e *Engine) searchParallel(ctx context.Context, src Source, target Target) (Result, error) {
	size := e.BatchSize
	if size <= 0 {
		size = DefaultBatchSize
	}
	g, gctx := errgroup.WithContext(ctx)
	batches := make(chan *batch, e.Workers)

	var best atomic.Int64 // lowest matching line number
	best.Store(math.MaxInt64)
	var tried atomic.Int64

	// Producer. A read error ends production but is not reported through
	// the group, so that batches already read are still searched.
	var readErr error
	g.Go(func() error {
		defer close(batches)
		send := func(b *batch) error {
			select {
			case batches <- b:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		}

		line := 1
		b := &batch{first: line}
		for best.Load() >= int64(line) && src.Next() {
			b.add(src.Candidate())
			line++
			if b.len() == size {
				if err := send(b); err != nil {
					return err
				}
				b = &batch{first: line, data: make([]byte, 0, len(b.data)), ends: make([]int, 0, size)}
			}
		}
		readErr = src.Err()
		if b.len() != 0 {
			return send(b)
		}
		return nil
	})

	// Workers. Each worker writes only its own slot of found.
	found := make([]Result, e.Workers)
	for i := range e.Workers {
		g.Go(func() error {
			m := newMatcher(e.Algorithm, target)
			for b := range batches {
				if err := gctx.Err(); err != nil {
					return err
				}
				if int64(b.first) > best.Load() {
					continue // a match precedes this batch
				}
				n := b.len()
				for j := range n {
					c := b.at(j)
					if !m.match(c) {
						continue
					}
					line := b.first + j
					if !found[i].Found || line < found[i].Line {
						found[i] = Result{Found: true, Candidate: string(c), Line: line}
					}
					storeMin(&best, int64(line))
					n = j + 1
					break
				}
				total := tried.Add(int64(n))
				if e.Progress != nil && total/progressInterval != (total-int64(n))/progressInterval {
					e.Progress(total)
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	var res Result
	for _, f := range found {
		if f.Found && (!res.Found || f.Line < res.Line) {
			res = f
		}
	}
	res.Tried = tried.Load()
	if res.Found {
		// Every line before the read failure was searched, so a match found
		// there is the same one the sequential search would report.
		return res, nil
	}
	if readErr != nil {
		return Result{}, sourceError(readErr, target)
	}
	return res, nil
}

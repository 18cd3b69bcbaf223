// Package cmdcrack implements the crack and watch subcommands.
package cmdcrack

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/getpass"
	"github.com/creachadair/hashfish/clipboard"
	"github.com/creachadair/hashfish/cmd/hf/config"
	"github.com/creachadair/hashfish/crack"
	"github.com/creachadair/hashfish/wordhash"
	"github.com/creachadair/hashfish/wordlist"
	"golang.org/x/term"
)

var Commands = []*command.C{
	{
		Name:  "crack",
		Usage: "<wordlist> [<target>]",
		Help: `Search a wordlist for a preimage of a target digest.

Each line of the wordlist is a candidate. Leading and trailing whitespace
is removed from each line before it is hashed. The first candidate whose
digest matches the target is printed, and the search stops.

The wordlist may be a file path, "-" for standard input, or the name of a
wordlist defined in the settings file. Wordlists compressed with gzip or
zstd are decompressed automatically.

If the target is omitted or "-", it is read from the terminal without echo.
The target is a hex-encoded digest in either case. Use --alg to choose the
hash algorithm; otherwise the settings default is used, or the algorithm is
guessed from the length of the target.

If no candidate matches, an error naming the target and wordlist is
reported and the exit status is non-zero.`,
		SetFlags: command.Flags(flax.MustBind, &searchFlags),
		Run:      command.Adapt(runCrack),
	},
	{
		Name:  "watch",
		Usage: "<wordlist> [<target>]",
		Help: `Search a wordlist, and search again each time it changes.

This behaves like "crack", but if no match is found it waits for the
wordlist file to be modified and searches it again. It stops when a match
is found, the file is moved or removed, or the process is interrupted.`,
		SetFlags: command.Flags(flax.MustBind, &searchFlags),
		Run:      command.Adapt(runWatch),
	},
}

var searchFlags struct {
	Alg     string        `flag:"alg,Hash algorithm (see 'hf algorithms')"`
	Workers int           `flag:"workers,Number of hashing workers (default: settings or all CPUs)"`
	Batch   int           `flag:"batch,Candidates per work unit when workers > 1"`
	Timeout time.Duration `flag:"timeout,Abort the search after this long"`
	Out     string        `flag:"out,Write a JSON report of the search to this path"`
	Copy    bool          `flag:"copy,Copy the recovered plaintext to the clipboard"`
	Quiet   bool          `flag:"q,Do not print progress"`
}

// search is the state of a single configured search.
type search struct {
	path   string
	target crack.Target
	engine *crack.Engine
}

// setup resolves the arguments and flags shared by crack and watch.
func setup(env *command.Env, name string, optTarget []string) (*search, error) {
	if len(optTarget) > 1 {
		return nil, env.Usagef("extra arguments after target: %q", optTarget[1:])
	}
	path, err := config.WordlistPath(env, name)
	if err != nil {
		return nil, err
	}
	if len(optTarget) == 0 || optTarget[0] == "-" {
		if path == "-" {
			return nil, env.Usagef("cannot read both the target and the wordlist from stdin")
		}
		raw, err := getpass.Prompt("Target digest: ")
		if err != nil {
			return nil, fmt.Errorf("read target: %w", err)
		}
		optTarget = []string{raw}
	}

	alg, err := config.Algorithm(env, searchFlags.Alg, optTarget[0])
	if err != nil {
		return nil, env.Usagef("%v", err)
	}
	target, err := crack.ParseTarget(optTarget[0], alg)
	if err != nil {
		return nil, env.Usagef("%v", err)
	}
	eng := &crack.Engine{
		Algorithm: alg,
		Workers:   config.Workers(env, searchFlags.Workers, runtime.GOMAXPROCS(0)),
		BatchSize: searchFlags.Batch,
	}
	if !searchFlags.Quiet && term.IsTerminal(int(os.Stderr.Fd())) {
		eng.Progress = func(n int64) { fmt.Fprintf(os.Stderr, "\r… %d candidates", n) }
	}
	if config.Get(env).Verbose {
		log.Printf("Searching %q for %s target with %d workers", path, alg.Name, eng.Workers)
	}
	return &search{path: path, target: target, engine: eng}, nil
}

// run performs one search of the wordlist.
func (s *search) run(ctx context.Context, env *command.Env) (crack.Result, error) {
	res, err := crack.SearchFile(ctx, s.engine, s.path, s.target)
	if s.engine.Progress != nil {
		fmt.Fprint(os.Stderr, "\r\033[K") // clear the progress line
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return res, fmt.Errorf("search of %q timed out", s.path)
	} else if err != nil {
		return res, err
	}
	if config.Get(env).Verbose {
		log.Printf("Tried %d candidates in %v (found=%v)", res.Tried, res.Elapsed, res.Found)
	}
	if searchFlags.Out != "" {
		rep := crack.NewReport(s.path, s.engine, s.target, res)
		if err := crack.WriteReport(searchFlags.Out, rep); err != nil {
			return res, err
		}
	}
	return res, nil
}

// searchContext returns a context that ends when the process is interrupted
// or the configured timeout expires.
func searchContext(env *command.Env) (context.Context, context.CancelFunc, error) {
	timeout, err := config.Timeout(env, searchFlags.Timeout)
	if err != nil {
		return nil, nil, err
	}
	ctx, stop := signal.NotifyContext(env.Context(), syscall.SIGINT, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop, nil
	}
	tctx, cancel := context.WithTimeout(ctx, timeout)
	return tctx, func() { cancel(); stop() }, nil
}

// runCrack implements the "crack" subcommand.
func runCrack(env *command.Env, name string, optTarget ...string) error {
	s, err := setup(env, name, optTarget)
	if err != nil {
		return err
	}
	ctx, cancel, err := searchContext(env)
	if err != nil {
		return err
	}
	defer cancel()

	res, err := s.run(ctx, env)
	if err != nil {
		return err
	}
	if err := res.Err(s.target, s.path); err != nil {
		return err
	}
	return printMatch(env, res)
}

// runWatch implements the "watch" subcommand.
func runWatch(env *command.Env, name string, optTarget ...string) error {
	s, err := setup(env, name, optTarget)
	if err != nil {
		return err
	}
	if s.path == "-" {
		return env.Usagef("cannot watch standard input")
	}
	w, err := wordlist.NewWatcher(s.path)
	if err != nil {
		return err
	}
	ctx, cancel, err := searchContext(env)
	if err != nil {
		w.Close()
		return err
	}
	defer cancel()

	var found crack.Result
	err = w.Run(ctx, func() (bool, error) {
		res, err := s.run(ctx, env)
		if err != nil {
			return true, err
		}
		if res.Found {
			found = res
			return true, nil
		}
		log.Printf("No match for %s in %q; waiting for changes", s.target, s.path)
		return false, nil
	})
	if errors.Is(err, context.Canceled) {
		return errors.New("interrupted")
	} else if err != nil {
		return err
	}
	if err := found.Err(s.target, s.path); err != nil {
		return err // the watch ended without a match
	}
	return printMatch(env, found)
}

// printMatch reports a successful match. If --copy is set, the plaintext is
// copied to the clipboard and only its word checksum is printed.
func printMatch(env *command.Env, res crack.Result) error {
	if searchFlags.Copy {
		if err := clipboard.WriteString(res.Candidate); err != nil {
			return fmt.Errorf("copying plaintext: %w", err)
		}
		fmt.Fprintf(env, "Copied match from line %d\n", res.Line)
		fmt.Println(wordhash.New(res.Candidate))
		return nil
	}
	fmt.Println(res.Candidate)
	return nil
}

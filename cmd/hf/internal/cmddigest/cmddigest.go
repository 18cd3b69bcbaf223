// Package cmddigest implements the digest and algorithms subcommands.
package cmddigest

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/hashfish/digest"
	"github.com/creachadair/hashfish/wordhash"
	"github.com/creachadair/hashfish/wordlist"
	"github.com/creachadair/mds/value"
)

var Commands = []*command.C{
	{
		Name:  "digest",
		Usage: "[<text> ...]",
		Help: `Print the hex digest of each argument.

If no arguments are given, each line of standard input is hashed instead,
with surrounding whitespace removed as for a wordlist. This is useful for
constructing targets for testing.`,
		SetFlags: command.Flags(flax.MustBind, &digestFlags),
		Run:      command.Adapt(runDigest),
	},
	{
		Name: "algorithms",
		Help: "List the supported hash algorithms.",
		Run:  command.Adapt(runAlgorithms),
	},
}

var digestFlags struct {
	Alg   string `flag:"alg,default=sha256,Hash algorithm (see 'hf algorithms')"`
	Words bool   `flag:"words,Also print a word fingerprint of each digest"`
}

// runDigest implements the "digest" subcommand.
func runDigest(env *command.Env, args ...string) error {
	alg, err := digest.Lookup(digestFlags.Alg)
	if err != nil {
		return env.Usagef("%v", err)
	}
	emit := func(data []byte) {
		sum := alg.Sum(data)
		if digestFlags.Words {
			fmt.Printf("%s %s\n", digest.Hex(sum), wordhash.Digest(sum))
		} else {
			fmt.Println(digest.Hex(sum))
		}
	}

	if len(args) != 0 {
		for _, arg := range args {
			emit([]byte(arg))
		}
		return nil
	}
	r := wordlist.New(os.Stdin)
	for _, c := range r.All() {
		emit(c)
	}
	return r.Err()
}

// runAlgorithms implements the "algorithms" subcommand.
func runAlgorithms(env *command.Env) error {
	tw := tabwriter.NewWriter(os.Stdout, 4, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tBYTES\tHEX\t")
	for _, alg := range digest.All() {
		mark := value.Cond(alg.Name == digest.Default, "(default)", "")
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", alg.Name, alg.Size, alg.HexLen(), mark)
	}
	return tw.Flush()
}

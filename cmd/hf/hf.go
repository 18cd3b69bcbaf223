// Program hf is a command-line tool for dictionary preimage search.
package main

import (
	"os"

	"github.com/creachadair/command"
	"github.com/creachadair/flax"
	"github.com/creachadair/hashfish/cmd/hf/config"
	settings "github.com/creachadair/hashfish/config"

	"github.com/creachadair/hashfish/cmd/hf/internal/cmdcrack"
	"github.com/creachadair/hashfish/cmd/hf/internal/cmddigest"
)

func main() {
	var flags struct {
		Config  string `flag:"config,Settings file path (default $HASHFISH_CONFIG or ~/.hashfish.yaml)"`
		Verbose bool   `flag:"v,Enable verbose logging"`
	}
	root := &command.C{
		Name: command.ProgramName(),
		Help: `🐟 A command-line tool for dictionary preimage search.

Given the hex digest of an unknown plaintext and a wordlist of candidate
plaintexts, hf hashes each candidate in turn and reports the first one
whose digest matches. Use --config to specify a settings file, or set
the HASHFISH_CONFIG environment variable.`,

		SetFlags: command.Flags(flax.MustBind, &flags),

		Init: func(env *command.Env) error {
			set := &config.Settings{
				ConfigPath: flags.Config,
				Verbose:    flags.Verbose,
			}
			if set.ConfigPath == "" {
				set.ConfigPath = settings.FilePath()
			}
			env.Config = set
			return set.Load()
		},

		Commands: append(append(
			cmdcrack.Commands,
			cmddigest.Commands...),
			command.HelpCommand([]command.HelpTopic{{
				Name: "settings",
				Help: `Format of the settings file.

The settings file is YAML. All fields are optional:

  algorithm: sha256        # default hash algorithm
  workers: 8               # default number of hashing workers
  timeout: 10m             # default search time limit
  wordlist: rockyou        # used when the wordlist argument is ""
  wordlists:               # named wordlists
    rockyou: ~/lists/rockyou.txt.gz
    common: $LISTS/common.txt

Flags given on the command line override the settings file.`,
			}, {
				Name: "exit",
				Help: `Exit status of the crack and watch commands.

  0   a matching candidate was found and printed
  1   no candidate matched, or the wordlist could not be read
  2   the command was used incorrectly, or the target is malformed`,
			}}),
			command.VersionCommand(),
		),
	}
	command.RunOrFail(root.NewEnv(nil).MergeFlags(true), os.Args[1:])
}

// Package config contains shared configuration settings for hf subcommands.
package config

import (
	"cmp"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/creachadair/command"
	"github.com/creachadair/hashfish/config"
	"github.com/creachadair/hashfish/digest"
)

// Settings are shared settings used by hf subcommands.
type Settings struct {
	ConfigPath string // path of the settings file, or "" for none
	Verbose    bool   // enable verbose logging

	File config.Settings // contents of the settings file, if any
}

// Load loads the settings file named by s.ConfigPath, if there is one. A
// missing settings file is not an error.
func (s *Settings) Load() error {
	if s.ConfigPath == "" {
		return nil
	}
	err := s.File.Load(s.ConfigPath)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}
	if s.Verbose {
		log.Printf("Loaded settings from %q", s.ConfigPath)
	}
	return nil
}

// Get returns the settings associated with env.
func Get(env *command.Env) *Settings { return env.Config.(*Settings) }

// WordlistPath resolves a wordlist name or path using the settings file.
func WordlistPath(env *command.Env, name string) (string, error) {
	path := Get(env).File.WordlistPath(name)
	if path == "" {
		return "", env.Usagef("no wordlist specified, and no default is set")
	}
	return path, nil
}

// Workers returns the number of hashing workers to use. A positive flag
// value wins, then the settings file, then def.
func Workers(env *command.Env, flagValue, def int) int {
	if flagValue > 0 {
		return flagValue
	}
	return cmp.Or(Get(env).File.Workers, def)
}

// Timeout returns the search timeout to use. A positive flag value wins,
// then the settings file. Zero means no timeout.
func Timeout(env *command.Env, flagValue time.Duration) (time.Duration, error) {
	if flagValue > 0 {
		return flagValue, nil
	}
	return Get(env).File.TimeoutDuration()
}

// Algorithm selects the hash algorithm for a target digest. An explicit name
// wins, then the settings file default. Otherwise the algorithm is guessed
// from the length of the target, falling back to digest.Default.
func Algorithm(env *command.Env, name, target string) (digest.Algorithm, error) {
	return chooseAlgorithm(cmp.Or(name, Get(env).File.Algorithm), target)
}

func chooseAlgorithm(name, target string) (digest.Algorithm, error) {
	if name != "" {
		return digest.Lookup(name)
	}
	if n := len(strings.TrimSpace(target)); n%2 == 0 {
		if algs := digest.ForSize(n / 2); len(algs) != 0 {
			if len(algs) > 1 {
				log.Printf("WARNING: Target length %d matches %d algorithms; using %s (set --alg to choose)",
					n, len(algs), algs[0].Name)
			}
			return algs[0], nil
		}
	}
	alg, err := digest.Lookup(digest.Default)
	if err != nil {
		panic(fmt.Sprintf("default algorithm: %v", err))
	}
	return alg, nil
}

// Package config handles hashfish configuration settings. Settings are
// stored as YAML on disk, for example:
//
//	algorithm: sha256
//	workers: 8
//	timeout: 10m
//	wordlist: rockyou
//	wordlists:
//	  rockyou: ~/lists/rockyou.txt.gz
//	  common: $LISTS/common.txt
//
// All fields are optional. Named wordlists may be used anywhere a wordlist
// path is expected.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Settings represents the contents of a hashfish settings file.
type Settings struct {
	// Algorithm is the default hash algorithm name.
	Algorithm string `yaml:"algorithm,omitempty"`

	// Workers is the default number of parallel hashing workers.
	Workers int `yaml:"workers,omitempty"`

	// Timeout, if set, is the default limit on the duration of a search, in
	// the format accepted by time.ParseDuration.
	Timeout string `yaml:"timeout,omitempty"`

	// Wordlist is the name or path of the wordlist to use when none is given.
	Wordlist string `yaml:"wordlist,omitempty"`

	// Wordlists map short names to wordlist paths. Paths may begin with "~/"
	// and may refer to environment variables.
	Wordlists map[string]string `yaml:"wordlists,omitempty"`
}

// FilePath returns the path of the settings file. If HASHFISH_CONFIG is set
// in the environment, its value is used even if empty (meaning no settings
// file); otherwise the default is $HOME/.hashfish.yaml.
func FilePath() string {
	if path, ok := os.LookupEnv("HASHFISH_CONFIG"); ok {
		return path
	}
	return os.ExpandEnv("$HOME/.hashfish.yaml")
}

// Load loads the contents of the specified path into s.  If path does not
// exist, the reported error satisfies os.IsNotExist and s is unmodified.
func (s *Settings) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var tmp Settings
	if err := yaml.Unmarshal(data, &tmp); err != nil {
		return fmt.Errorf("parse settings %q: %w", path, err)
	}
	if err := tmp.Validate(); err != nil {
		return fmt.Errorf("settings %q: %w", path, err)
	}
	*s = tmp
	return nil
}

// Validate reports an error if s contains invalid values.
func (s *Settings) Validate() error {
	if s.Workers < 0 {
		return fmt.Errorf("invalid workers: %d", s.Workers)
	}
	if _, err := s.TimeoutDuration(); err != nil {
		return err
	}
	for name, path := range s.Wordlists {
		if name == "" || path == "" {
			return fmt.Errorf("invalid wordlist entry %q: %q", name, path)
		}
	}
	return nil
}

// TimeoutDuration parses the Timeout field. An empty Timeout is zero.
func (s *Settings) TimeoutDuration() (time.Duration, error) {
	if s.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout: %v is negative", d)
	}
	return d, nil
}

// WordlistPath resolves name to a wordlist path. If name is empty, the
// default Wordlist is used. If the result names an entry in Wordlists, its
// path is returned with "~" and environment variables expanded; otherwise
// the name is returned unchanged, as a path.
func (s *Settings) WordlistPath(name string) string {
	if name == "" {
		name = s.Wordlist
	}
	path, ok := s.Wordlists[name]
	if !ok {
		return name
	}
	return expandPath(path)
}

func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, rest)
		}
	}
	return path
}

// Package digest provides the hash primitives and the hexadecimal codec used
// to compare candidate plaintexts against a target digest.
//
// Each Algorithm is a named constructor for a hash.Hash with a fixed digest
// size. Algorithms are looked up by name (for example "sha256" or
// "blake2b-256"), or by digest size when the caller has only a target value
// and needs a plausible guess.
package digest

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// An Algorithm is a named hash function with a fixed digest size.
type Algorithm struct {
	Name string           // the unique name of the algorithm
	Size int              // digest size in bytes
	New  func() hash.Hash // construct a new hash state
}

// IsValid reports whether a is a usable algorithm.
func (a Algorithm) IsValid() bool { return a.Name != "" && a.Size > 0 && a.New != nil }

// HexLen reports the length in characters of a hex-encoded digest of a.
func (a Algorithm) HexLen() int { return 2 * a.Size }

// Sum returns the digest of data under a.
func (a Algorithm) Sum(data []byte) []byte {
	h := a.New()
	h.Write(data)
	return h.Sum(nil)
}

// HexSum returns the lowercase hex-encoded digest of data under a.
func (a Algorithm) HexSum(data []byte) string { return Hex(a.Sum(data)) }

func (a Algorithm) String() string { return a.Name }

// Default is the algorithm used when none is specified.
const Default = "sha256"

// The registry is in order of preference: when several algorithms share a
// digest size, ForSize reports them in this order.
var registry = []Algorithm{
	{Name: "md5", Size: md5.Size, New: md5.New},
	{Name: "sha1", Size: sha1.Size, New: sha1.New},
	{Name: "sha224", Size: sha256.Size224, New: sha256.New224},
	{Name: "sha256", Size: sha256.Size, New: sha256.New},
	{Name: "sha384", Size: sha512.Size384, New: sha512.New384},
	{Name: "sha512", Size: sha512.Size, New: sha512.New},
	{Name: "sha512-256", Size: sha512.Size256, New: sha512.New512_256},
	{Name: "sha3-224", Size: 28, New: sha3.New224},
	{Name: "sha3-256", Size: 32, New: sha3.New256},
	{Name: "sha3-384", Size: 48, New: sha3.New384},
	{Name: "sha3-512", Size: 64, New: sha3.New512},
	{Name: "blake2b-256", Size: blake2b.Size256, New: unkeyed(blake2b.New256)},
	{Name: "blake2b-512", Size: blake2b.Size, New: unkeyed(blake2b.New512)},
	{Name: "blake2s-256", Size: blake2s.Size, New: unkeyed(blake2s.New256)},
	{Name: "ripemd160", Size: ripemd160.Size, New: ripemd160.New},
	{Name: "md4", Size: md4.Size, New: md4.New},
	{Name: "ntlm", Size: md4.Size, New: newNTLM},
	{Name: "xxh64", Size: 8, New: func() hash.Hash { return xxhash.New() }},
}

// unkeyed adapts a keyed hash constructor to an unkeyed one.  The BLAKE2
// constructors only fail for oversized keys, so a nil key cannot fail.
func unkeyed(newHash func(key []byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := newHash(nil)
		if err != nil {
			panic(fmt.Sprintf("unkeyed hash: %v", err))
		}
		return h
	}
}

// Lookup returns the algorithm with the given name. Names are matched without
// regard to case, and an empty name selects Default.
func Lookup(name string) (Algorithm, error) {
	if name == "" {
		name = Default
	}
	name = strings.ToLower(strings.TrimSpace(name))
	for _, a := range registry {
		if a.Name == name {
			return a, nil
		}
	}
	return Algorithm{}, fmt.Errorf("unknown algorithm %q", name)
}

// MustLookup is as Lookup, but panics if the name is not known.
func MustLookup(name string) Algorithm {
	a, err := Lookup(name)
	if err != nil {
		panic(err)
	}
	return a
}

// All returns all the known algorithms in order of preference.
func All() []Algorithm { return slices.Clone(registry) }

// Names returns the names of all known algorithms, in order of preference.
func Names() []string {
	out := make([]string, len(registry))
	for i, a := range registry {
		out[i] = a.Name
	}
	return out
}

// ForSize returns the known algorithms whose digests are size bytes long, in
// order of preference. The result is empty if no algorithm has that size.
func ForSize(size int) []Algorithm {
	var out []Algorithm
	for _, a := range registry {
		if a.Size == size {
			out = append(out, a)
		}
	}
	return out
}

// Hex returns the lowercase hexadecimal encoding of sum.
func Hex(sum []byte) string { return hex.EncodeToString(sum) }

// AppendHex appends the lowercase hexadecimal encoding of sum to dst and
// returns the extended slice.
func AppendHex(dst, sum []byte) []byte { return hex.AppendEncode(dst, sum) }

// ParseHex decodes a hexadecimal digest string. Either case is accepted.
func ParseHex(s string) ([]byte, error) {
	sum, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid hex digest: %w", err)
	}
	return sum, nil
}

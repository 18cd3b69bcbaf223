package digest

import (
	"hash"
	"unicode/utf8"

	"golang.org/x/crypto/md4"
	"golang.org/x/text/encoding/unicode"
)

// ntlmHash computes the NT hash: MD4 over the UTF-16LE encoding of the input.
// Writes are buffered because a multi-byte UTF-8 sequence may be split across
// calls to Write.
type ntlmHash struct {
	buf []byte
}

func newNTLM() hash.Hash { return new(ntlmHash) }

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

func (h *ntlmHash) Write(data []byte) (int, error) {
	h.buf = append(h.buf, data...)
	return len(data), nil
}

func (h *ntlmHash) Sum(b []byte) []byte {
	var wide []byte
	if utf8.Valid(h.buf) {
		var err error
		wide, err = utf16le.NewEncoder().Bytes(h.buf)
		if err != nil {
			panic(err) // valid UTF-8 always encodes
		}
	} else {
		// Input that is not UTF-8 is treated as Latin-1.
		wide = make([]byte, 0, 2*len(h.buf))
		for _, c := range h.buf {
			wide = append(wide, c, 0)
		}
	}
	m := md4.New()
	m.Write(wide)
	return m.Sum(b)
}

func (h *ntlmHash) Reset()         { h.buf = h.buf[:0] }
func (h *ntlmHash) Size() int      { return md4.Size }
func (h *ntlmHash) BlockSize() int { return md4.BlockSize }

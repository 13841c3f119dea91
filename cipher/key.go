// Package cipher implements a monoalphabetic substitution cipher keyed by two
// position-aligned alphabets.
//
// A key file holds the plain alphabet on its first line and the cipher
// alphabet on its second:
//
//	abcdef
//	bcdefa
//
// Here cipher 'b' decodes to plain 'a', cipher 'c' to 'b', and so on.
// Characters outside the cipher alphabet pass through decoding unchanged.
package cipher

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Key is an immutable substitution mapping between a plain and a cipher
// alphabet.
type Key struct {
	plain  []rune
	cipher []rune
	decode map[rune]rune
	encode map[rune]rune
}

// NewKey validates the two alphabets and builds the mapping from cipher
// position i to plain position i.
func NewKey(plainAlphabet, cipherAlphabet string) (*Key, error) {
	if err := Validate(plainAlphabet, cipherAlphabet); err != nil {
		return nil, err
	}

	p := []rune(plainAlphabet)
	c := []rune(cipherAlphabet)
	k := &Key{
		plain:  p,
		cipher: c,
		decode: make(map[rune]rune, len(c)),
		encode: make(map[rune]rune, len(p)),
	}
	for i := range p {
		k.decode[c[i]] = p[i]
		k.encode[p[i]] = c[i]
	}
	return k, nil
}

// Size returns the number of mapped characters.
func (k *Key) Size() int {
	return len(k.cipher)
}

// Alphabets returns copies of the plain and cipher alphabets.
func (k *Key) Alphabets() (plainAlphabet, cipherAlphabet string) {
	return string(k.plain), string(k.cipher)
}

// DecodeRune maps a cipher character to its plain counterpart. Characters
// outside the cipher alphabet are returned unchanged.
func (k *Key) DecodeRune(r rune) rune {
	if m, ok := k.decode[r]; ok {
		return m
	}
	return r
}

// EncodeRune maps a plain character to its cipher counterpart. Characters
// outside the plain alphabet are returned unchanged.
func (k *Key) EncodeRune(r rune) rune {
	if m, ok := k.encode[r]; ok {
		return m
	}
	return r
}

// Fingerprint identifies the key without revealing it: the first 8 bytes of
// BLAKE2b-256 over both alphabets, hex encoded.
func (k *Key) Fingerprint() string {
	h, _ := blake2b.New256(nil)
	h.Write([]byte(string(k.plain)))
	h.Write([]byte{'\n'})
	h.Write([]byte(string(k.cipher)))
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:8])
}

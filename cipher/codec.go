package cipher

import (
	"strings"
	"unicode/utf8"
)

// Decode replaces every character of text that appears in the key's cipher
// alphabet with its plain counterpart. All other characters, including
// invalid UTF-8 bytes, are copied through. Decode never fails; a nil key
// returns text unchanged.
func Decode(text string, key *Key) string {
	if key == nil {
		return text
	}
	return translate(text, key.DecodeRune)
}

// Encode is the inverse of Decode: characters of the plain alphabet are
// replaced with their cipher counterparts.
func Encode(text string, key *Key) string {
	if key == nil {
		return text
	}
	return translate(text, key.EncodeRune)
}

func translate(text string, mapRune func(rune) rune) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteByte(text[i])
		} else {
			sb.WriteRune(mapRune(r))
		}
		i += size
	}
	return sb.String()
}

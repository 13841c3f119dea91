package cipher

import "unicode/utf8"

// Validate checks that two alphabets can form a key: both non-empty and valid
// UTF-8, equal in length, and free of repeated characters.
func Validate(plainAlphabet, cipherAlphabet string) error {
	if err := validateLine("plain", plainAlphabet); err != nil {
		return err
	}
	if err := validateLine("cipher", cipherAlphabet); err != nil {
		return err
	}

	pn := utf8.RuneCountInString(plainAlphabet)
	cn := utf8.RuneCountInString(cipherAlphabet)
	if pn != cn {
		return errorf(KindKeyValidationFailed,
			"alphabets must be the same length: plain has %d characters, cipher has %d", pn, cn)
	}

	if err := validateDistinct("plain", plainAlphabet); err != nil {
		return err
	}
	return validateDistinct("cipher", cipherAlphabet)
}

func validateLine(label, s string) error {
	if s == "" {
		return errorf(KindKeyFormatInvalid, "%s alphabet must not be empty", label)
	}
	if !utf8.ValidString(s) {
		return errorf(KindKeyFormatInvalid, "%s alphabet contains invalid UTF-8", label)
	}
	return nil
}

// validateDistinct rejects alphabets that repeat a character. Building the
// map alone would let a later position silently overwrite an earlier one.
func validateDistinct(label, s string) error {
	seen := make(map[rune]int, len(s))
	pos := 0
	for _, r := range s {
		pos++
		if first, ok := seen[r]; ok {
			return errorf(KindKeyValidationFailed,
				"%s alphabet repeats %q at positions %d and %d", label, r, first, pos)
		}
		seen[r] = pos
	}
	return nil
}

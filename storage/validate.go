package storage

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxNameLength bounds the length of a file name in bytes.
const MaxNameLength = 255

func invalidNamef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidName, fmt.Sprintf(format, args...))
}

// ValidateName rejects names that could escape the data directory or are not
// text files with extension ext.
func ValidateName(name, ext string) error {
	if strings.TrimSpace(name) == "" {
		return invalidNamef("name must not be blank")
	}
	if len(name) > MaxNameLength {
		return invalidNamef("name exceeds maximum length of %d", MaxNameLength)
	}
	if !utf8.ValidString(name) {
		return invalidNamef("name contains invalid UTF-8")
	}
	if strings.Contains(name, "..") {
		return invalidNamef("name contains forbidden sequence %q", "..")
	}
	for _, r := range name {
		if r == '/' || r == '\\' {
			return invalidNamef("name contains forbidden character %q", r)
		}
		if unicode.IsControl(r) {
			return invalidNamef("name contains control character")
		}
	}
	if !strings.HasSuffix(name, ext) {
		return invalidNamef("name must end with %s", ext)
	}
	return nil
}

package util

import (
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// NewTextReader wraps r so that a leading byte order mark is consumed.
// UTF-16 input announced by a BOM is transcoded to UTF-8; anything else is
// passed through untouched.
func NewTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(transform.Nop))
}

// ReadText reads all of r through NewTextReader.
func ReadText(r io.Reader) (string, error) {
	b, err := io.ReadAll(NewTextReader(r))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// SplitLines splits s into lines terminated by "\n" or "\r\n". A trailing
// terminator does not produce an extra empty line.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

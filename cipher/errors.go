package cipher

import (
	"errors"
	"fmt"
)

// Kind is a stable category for key failures. Callers should branch on Kind
// rather than on error strings.
type Kind string

const (
	// KindKeyNotFound means the key source could not be located or read.
	KindKeyNotFound Kind = "KeyNotFound"
	// KindKeyFormatInvalid means the key has fewer than two lines, an empty
	// line, or is not valid UTF-8.
	KindKeyFormatInvalid Kind = "KeyFormatInvalid"
	// KindKeyValidationFailed means the alphabets differ in length or
	// repeat a character.
	KindKeyValidationFailed Kind = "KeyValidationFailed"
)

// Error is the structured error returned by key construction and loading.
// Use errors.As to extract it.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, cause error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// KindOf returns the Kind of err, or "" if err is not (and does not wrap) an
// *Error.
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}

// IsKind reports whether err is (or wraps) an *Error with the given Kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

package control

import (
	"errors"
	"fmt"
)

// Kind identifies a failure surfaced by the Controller. The set is closed:
// every failure of a request maps to exactly one Kind.
type Kind string

const (
	KindSelectionOutOfRange    Kind = "SelectionOutOfRange"
	KindFileUnreadable         Kind = "FileUnreadable"
	KindKeyUnavailable         Kind = "KeyUnavailable"
	KindInvalidSelectionSyntax Kind = "InvalidSelectionSyntax"
	KindInvalidArguments       Kind = "InvalidArguments"
)

// Error is a tagged failure with a short diagnostic. Cause keeps the
// underlying error for errors.Is/As; its text is never needed to tell kinds
// apart.
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

// NewError returns an *Error of the given kind.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, cause error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
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

package control

import (
	"strconv"
	"strings"

	"github.com/jmcleod/topsecret/catalog"
)

// Request asks for either the listing (HasSelection false) or the decoded
// content of one entry.
type Request struct {
	HasSelection bool
	Selection    int
	// KeySource overrides the default key when non-empty.
	KeySource string
}

// Outcome tells which shape a Result has.
type Outcome int

const (
	OutcomeFailed Outcome = iota
	OutcomeListing
	OutcomeEmpty
	OutcomeDecoded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeListing:
		return "listing"
	case OutcomeEmpty:
		return "empty"
	case OutcomeDecoded:
		return "decoded"
	default:
		return "failed"
	}
}

// Result is the response to a Request.
type Result struct {
	Outcome Outcome
	// Output is the rendered listing, NoFilesFound, or the decoded text.
	Output string
	// Entries is set for listings.
	Entries []catalog.Entry
	// File is the selected entry for decoded results.
	File catalog.Entry
	// Err is set when Outcome is OutcomeFailed.
	Err *Error
}

// OK reports whether the request succeeded.
func (r Result) OK() bool {
	return r.Outcome != OutcomeFailed
}

// Error returns the failure as an error, or nil.
func (r Result) Error() error {
	if r.Err == nil {
		return nil
	}
	return r.Err
}

func failed(err *Error) Result {
	return Result{Outcome: OutcomeFailed, Err: err}
}

// ParseSelection parses a selection token such as "01". Only ASCII digits are
// accepted; whether the number is in range is decided against a listing.
func ParseSelection(token string) (int, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return 0, NewError(KindInvalidSelectionSyntax, "file number must not be empty")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, NewError(KindInvalidSelectionSyntax, "invalid file number %q", token)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, wrapError(KindInvalidSelectionSyntax, err, "invalid file number")
	}
	return n, nil
}

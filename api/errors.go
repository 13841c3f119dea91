package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jmcleod/topsecret/control"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, kind control.Kind) {
	writeJSON(w, status, ErrorResponse{Error: msg, Kind: string(kind)})
}

// statusFor maps a failure kind to an HTTP status.
func statusFor(kind control.Kind) int {
	switch kind {
	case control.KindInvalidSelectionSyntax, control.KindInvalidArguments:
		return http.StatusBadRequest
	case control.KindSelectionOutOfRange:
		return http.StatusNotFound
	case control.KindKeyUnavailable:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func mapError(w http.ResponseWriter, err error) {
	var e *control.Error
	if !errors.As(err, &e) {
		writeError(w, http.StatusInternalServerError, err.Error(), "")
		return
	}
	// The cause may name paths on the host; only the diagnostic is returned.
	writeError(w, statusFor(e.Kind), e.Message, e.Kind)
}

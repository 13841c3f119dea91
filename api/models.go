package api

import "github.com/jmcleod/topsecret/catalog"

// ListFilesResponse is returned from GET /files.
type ListFilesResponse struct {
	Files   []catalog.Entry `json:"files"`
	Message string          `json:"message,omitempty"`
}

// GetFileResponse is returned from GET /files/{selection}.
type GetFileResponse struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
	Text  string `json:"text"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Package storage defines the data-file collaborator the catalog and
// controller read from.
package storage

import "errors"

var (
	// ErrNotFound is returned when a named file does not exist.
	ErrNotFound = errors.New("file not found")
	// ErrInvalidName is returned for names that are empty, contain path
	// separators or traversal sequences, or lack the text extension.
	ErrInvalidName = errors.New("invalid file name")
)

// DefaultExtension is the extension recognised as a text file.
const DefaultExtension = ".txt"

// Repository lists and reads the text files of a data directory.
type Repository interface {
	// List returns the names of the text files, in no particular order.
	List() ([]string, error)
	// Read returns the full contents of the named file.
	Read(name string) (string, error)
}

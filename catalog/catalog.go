// Package catalog enumerates the selectable data files as an ordered,
// 1-based listing.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jmcleod/topsecret/storage"
)

// ErrIndexOutOfRange is returned when a selection falls outside a listing.
var ErrIndexOutOfRange = errors.New("index out of range")

// Entry is one position in a listing.
type Entry struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Catalog produces listings from a storage.Repository.
type Catalog struct {
	repo storage.Repository
	ext  string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithExtension restricts listings to names ending in ext.
// Default: storage.DefaultExtension.
func WithExtension(ext string) Option {
	return func(c *Catalog) {
		c.ext = ext
	}
}

// New creates a Catalog over repo.
func New(repo storage.Repository, opts ...Option) *Catalog {
	c := &Catalog{repo: repo, ext: storage.DefaultExtension}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns the current text files sorted lexicographically, so that an
// unchanged directory always yields the same indices.
func (c *Catalog) List() (*Listing, error) {
	names, err := c.repo.List()
	if err != nil {
		return nil, fmt.Errorf("listing data files: %w", err)
	}

	kept := make([]string, 0, len(names))
	for _, name := range names {
		if strings.HasSuffix(name, c.ext) {
			kept = append(kept, name)
		}
	}
	slices.Sort(kept)
	return &Listing{names: slices.Compact(kept)}, nil
}

// Resolve lists the files and returns the name at the 1-based index.
func (c *Catalog) Resolve(index int) (string, error) {
	l, err := c.List()
	if err != nil {
		return "", err
	}
	return l.Resolve(index)
}

// Listing is the result of one List call. Indices are only meaningful within
// the listing that produced them.
type Listing struct {
	names []string
}

// Len returns the number of entries.
func (l *Listing) Len() int {
	return len(l.names)
}

// Names returns the file names in listing order.
func (l *Listing) Names() []string {
	return slices.Clone(l.names)
}

// Entries returns the listing with 1-based indices.
func (l *Listing) Entries() []Entry {
	entries := make([]Entry, len(l.names))
	for i, name := range l.names {
		entries[i] = Entry{Index: i + 1, Name: name}
	}
	return entries
}

// Resolve returns the name at the 1-based index.
func (l *Listing) Resolve(index int) (string, error) {
	if index < 1 || index > len(l.names) {
		return "", fmt.Errorf("%w: %d not in 1..%d", ErrIndexOutOfRange, index, len(l.names))
	}
	return l.names[index-1], nil
}

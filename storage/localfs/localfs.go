// Package localfs provides a storage.Repository backed by a directory on disk.
package localfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/jmcleod/topsecret/internal/util"
	"github.com/jmcleod/topsecret/storage"
)

// Store reads text files from a single directory. Subdirectories are never
// listed or read.
type Store struct {
	dir string
	ext string
}

var _ storage.Repository = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithExtension sets the recognised text extension.
// Default: storage.DefaultExtension.
func WithExtension(ext string) Option {
	return func(s *Store) {
		s.ext = ext
	}
}

// New returns a Store rooted at dir. The directory does not need to exist;
// a missing directory lists as empty.
func New(dir string, opts ...Option) *Store {
	s := &Store{dir: dir, ext: storage.DefaultExtension}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) List() ([]string, error) {
	root, err := os.OpenRoot(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening data directory %s: %w", s.dir, err)
	}
	defer root.Close()

	entries, err := fs.ReadDir(root.FS(), ".")
	if err != nil {
		return nil, fmt.Errorf("listing data directory %s: %w", s.dir, err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if !strings.HasSuffix(name, s.ext) || storage.ValidateName(name, s.ext) != nil {
			continue
		}
		info, err := root.Stat(name)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (s *Store) Read(name string) (string, error) {
	if err := storage.ValidateName(name, s.ext); err != nil {
		return "", err
	}

	root, err := os.OpenRoot(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", name, storage.ErrNotFound)
		}
		return "", fmt.Errorf("opening data directory %s: %w", s.dir, err)
	}
	defer root.Close()

	info, err := root.Stat(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", name, storage.ErrNotFound)
		}
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%s is not a regular file: %w", name, storage.ErrNotFound)
	}

	f, err := root.Open(name)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	defer f.Close()

	content, err := util.ReadText(f)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return content, nil
}

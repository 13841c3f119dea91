// Package memory provides a thread-safe in-memory implementation of
// storage.Repository.
package memory

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jmcleod/topsecret/storage"
)

// Repository is a thread-safe in-memory implementation of storage.Repository.
// Suitable for testing, demos, and embedding the decoder without a disk.
type Repository struct {
	mu    sync.RWMutex
	ext   string
	files map[string]string
}

var _ storage.Repository = (*Repository)(nil)

// Option configures a Repository.
type Option func(*Repository)

// WithExtension sets the recognised text extension.
// Default: storage.DefaultExtension.
func WithExtension(ext string) Option {
	return func(r *Repository) {
		r.ext = ext
	}
}

// NewRepository creates a new empty in-memory Repository.
func NewRepository(opts ...Option) *Repository {
	r := &Repository{
		ext:   storage.DefaultExtension,
		files: make(map[string]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Put stores content under name, replacing any previous content.
func (r *Repository) Put(name, content string) error {
	if err := storage.ValidateName(name, r.ext); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[name] = content
	return nil
}

// Delete removes the named file.
func (r *Repository) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.files[name]; !ok {
		return fmt.Errorf("%s: %w", name, storage.ErrNotFound)
	}
	delete(r.files, name)
	return nil
}

func (r *Repository) List() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.files))
	for name := range r.files {
		if strings.HasSuffix(name, r.ext) {
			names = append(names, name)
		}
	}
	return names, nil
}

func (r *Repository) Read(name string) (string, error) {
	if err := storage.ValidateName(name, r.ext); err != nil {
		return "", err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	content, ok := r.files[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, storage.ErrNotFound)
	}
	return content, nil
}

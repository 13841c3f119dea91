// Package control ties the catalog, the key loader and the decoder into a
// single request/response cycle.
//
// A Controller keeps no state between calls: every call lists the data files
// and loads the key afresh, so it is safe to build one per request.
package control

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmcleod/topsecret/catalog"
	"github.com/jmcleod/topsecret/cipher"
	"github.com/jmcleod/topsecret/internal/uuid"
	"github.com/jmcleod/topsecret/storage"
)

const (
	// DefaultKey is the key source used when a selection names none.
	DefaultKey = "key.txt"
	// NoFilesFound is the output of a listing with no entries.
	NoFilesFound = "(no files found)"
)

// Controller serves listing and decode requests.
type Controller struct {
	catalog    *catalog.Catalog
	repo       storage.Repository
	loader     *cipher.Loader
	defaultKey string
	logger     *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithDefaultKey sets the key source used when a request names none.
// Default: DefaultKey.
func WithDefaultKey(source string) Option {
	return func(c *Controller) {
		c.defaultKey = source
	}
}

// WithLogger sets the structured logger. If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates a Controller. cat and repo normally wrap the same data
// directory: cat decides which names are selectable, repo reads them.
func New(cat *catalog.Catalog, repo storage.Repository, loader *cipher.Loader, opts ...Option) *Controller {
	c := &Controller{
		catalog:    cat,
		repo:       repo,
		loader:     loader,
		defaultKey: DefaultKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Handle dispatches req to List or Select.
func (c *Controller) Handle(req Request) Result {
	if !req.HasSelection {
		return c.List()
	}
	return c.Select(req.Selection, req.KeySource)
}

// Execute runs the command-line contract: no arguments lists the files, one
// argument selects a file with the default key, two arguments select a file
// with the given key.
func (c *Controller) Execute(args []string) Result {
	switch len(args) {
	case 0:
		return c.List()
	case 1, 2:
	default:
		return c.reject(NewError(KindInvalidArguments, "expected at most 2 arguments, got %d", len(args)))
	}

	index, err := ParseSelection(args[0])
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return c.reject(e)
		}
		return c.reject(wrapError(KindInvalidSelectionSyntax, err, "invalid file number"))
	}

	keySource := ""
	if len(args) == 2 {
		keySource = args[1]
		if strings.TrimSpace(keySource) == "" {
			return c.reject(NewError(KindInvalidArguments, "key file must not be empty"))
		}
	}
	return c.Select(index, keySource)
}

// List returns the rendered listing, or NoFilesFound with OutcomeEmpty when
// there are no files.
func (c *Controller) List() Result {
	log := c.logger.With(slog.String("request_id", uuid.New()))

	listing, err := c.catalog.List()
	if err != nil {
		return fail(log, wrapError(KindFileUnreadable, err, "unable to list data files"))
	}
	log.Debug("listed data files", slog.Int("count", listing.Len()))

	if listing.Len() == 0 {
		return Result{Outcome: OutcomeEmpty, Output: NoFilesFound}
	}
	entries := listing.Entries()
	return Result{
		Outcome: OutcomeListing,
		Output:  RenderListing(entries),
		Entries: entries,
	}
}

// Select decodes the file at the 1-based index with the given key source, or
// the default key when keySource is empty.
func (c *Controller) Select(index int, keySource string) Result {
	if keySource == "" {
		keySource = c.defaultKey
	}
	log := c.logger.With(
		slog.String("request_id", uuid.New()),
		slog.Int("selection", index))

	listing, err := c.catalog.List()
	if err != nil {
		return fail(log, wrapError(KindFileUnreadable, err, "unable to list data files"))
	}

	name, err := listing.Resolve(index)
	if err != nil {
		return fail(log, wrapError(KindSelectionOutOfRange, err, "file number out of range"))
	}

	raw, err := c.repo.Read(name)
	if err != nil {
		return fail(log, wrapError(KindFileUnreadable, err, fmt.Sprintf("file %s not found or unreadable", name)))
	}

	key, err := c.loader.Load(keySource)
	if err != nil {
		return fail(log, wrapError(KindKeyUnavailable, err, "unable to decipher with provided key"))
	}

	log.Debug("decoded file",
		slog.String("file", name),
		slog.String("key_fingerprint", key.Fingerprint()),
		slog.Int("key_size", key.Size()))

	return Result{
		Outcome: OutcomeDecoded,
		Output:  cipher.Decode(raw, key),
		File:    catalog.Entry{Index: index, Name: name},
	}
}

func (c *Controller) reject(e *Error) Result {
	return fail(c.logger, e)
}

func fail(log *slog.Logger, e *Error) Result {
	attrs := []any{slog.String("kind", string(e.Kind)), slog.String("error", e.Error())}
	if k := cipher.KindOf(e); k != "" {
		attrs = append(attrs, slog.String("key_error", string(k)))
	}
	log.Info("request failed", attrs...)
	return failed(e)
}

// RenderListing formats entries as "NN name" lines, numbered from 01.
func RenderListing(entries []catalog.Entry) string {
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("%02d %s", e.Index, e.Name)
	}
	return strings.Join(lines, "\n")
}

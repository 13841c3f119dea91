package cipher

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/awnumar/memguard"

	"github.com/jmcleod/topsecret/internal/util"
)

// DefaultFallbackDir is where key names are looked up when they do not
// resolve as given.
const DefaultFallbackDir = "ciphers"

// Loader reads key files and turns them into Keys.
type Loader struct {
	fallbackDir string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFallbackDir sets the directory searched when a key source does not
// exist as given. An empty dir disables the fallback.
func WithFallbackDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.fallbackDir = dir
	}
}

// NewLoader creates a Loader. By default it falls back to DefaultFallbackDir.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{fallbackDir: DefaultFallbackDir}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Resolve returns the file a key source refers to: the source itself if it
// names an existing file, otherwise the same name inside the fallback
// directory.
func (l *Loader) Resolve(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		return "", errorf(KindKeyNotFound, "key source must not be empty")
	}

	found, err := isFile(source)
	if err != nil {
		return "", wrapError(KindKeyNotFound, err, "checking key %s", source)
	}
	if found {
		return source, nil
	}

	if l.fallbackDir == "" {
		return "", errorf(KindKeyNotFound, "key %s not found", source)
	}
	candidate := filepath.Join(l.fallbackDir, source)
	found, err = isFile(candidate)
	if err != nil {
		return "", wrapError(KindKeyNotFound, err, "checking key %s", candidate)
	}
	if !found {
		return "", errorf(KindKeyNotFound, "key %s not found (also tried %s)", source, candidate)
	}
	return candidate, nil
}

// Load resolves source, reads it and builds a Key. The raw file bytes are
// moved into a memguard buffer and wiped once parsed; the decoded alphabets
// and the Key itself live in ordinary memory.
func (l *Loader) Load(source string) (*Key, error) {
	path, err := l.Resolve(source)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapError(KindKeyNotFound, err, "reading key %s", path)
	}
	buf := memguard.NewBufferFromBytes(raw)
	defer buf.Destroy()

	key, err := Parse(buf.Reader())
	if err != nil {
		var e *Error
		if errors.As(err, &e) {
			return nil, &Error{Kind: e.Kind, Message: fmt.Sprintf("key %s: %s", path, e.Message), Cause: e.Cause}
		}
		return nil, err
	}
	return key, nil
}

// Parse reads a key from r. The first line is the plain alphabet and the
// second the cipher alphabet; any further lines are ignored. A leading byte
// order mark and "\r\n" line endings are accepted.
func Parse(r io.Reader) (*Key, error) {
	text, err := util.ReadText(r)
	if err != nil {
		return nil, wrapError(KindKeyFormatInvalid, err, "reading key")
	}
	lines := util.SplitLines(text)
	if len(lines) < 2 {
		return nil, errorf(KindKeyFormatInvalid, "expected at least 2 lines, got %d", len(lines))
	}
	return NewKey(lines[0], lines[1])
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

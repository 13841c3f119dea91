// Package config loads topsecret settings.
//
// Settings come from, in increasing precedence:
//   - built-in defaults
//   - a TOML file (--config, or topsecret.toml in the working directory)
//   - TOPSECRET_* environment variables
//
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jmcleod/topsecret/cipher"
	"github.com/jmcleod/topsecret/control"
	"github.com/jmcleod/topsecret/storage"
)

// DefaultFileName is looked up in the working directory when no config path
// is given.
const DefaultFileName = "topsecret.toml"

// Config is the complete topsecret configuration.
type Config struct {
	// DataDir holds the selectable text files.
	DataDir string `toml:"data_dir"`
	// Extension marks a file in DataDir as selectable.
	Extension string `toml:"extension"`
	// KeyDir is searched for key names that do not resolve as given.
	KeyDir string `toml:"key_dir"`
	// DefaultKey is used when a selection names no key.
	DefaultKey string `toml:"default_key"`

	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is "json" or "text".
	Format string `toml:"format"`
}

// ServerConfig controls the HTTP wrapper.
type ServerConfig struct {
	// Listen is the host:port to bind.
	Listen string `toml:"listen"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataDir:    "data",
		Extension:  storage.DefaultExtension,
		KeyDir:     cipher.DefaultFallbackDir,
		DefaultKey: control.DefaultKey,
		Log: LogConfig{
			Level:  "warn",
			Format: "json",
		},
		Server: ServerConfig{
			Listen: "127.0.0.1:8080",
		},
	}
}

// Load builds a Config from defaults, the TOML file at path and environment
// overrides. An empty path uses DefaultFileName if it exists; a non-empty
// path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(DefaultFileName); err == nil {
			path = DefaultFileName
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("checking %s: %w", DefaultFileName, err)
		}
	}
	if path != "" {
		if err := LoadTOML(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes the TOML file at path into cfg. Unknown keys are an error.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnvOverrides overrides settings from TOPSECRET_* variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("TOPSECRET_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("TOPSECRET_EXTENSION"); v != "" {
		c.Extension = v
	}
	if v := os.Getenv("TOPSECRET_KEY_DIR"); v != "" {
		c.KeyDir = v
	}
	if v := os.Getenv("TOPSECRET_DEFAULT_KEY"); v != "" {
		c.DefaultKey = v
	}
	if v := os.Getenv("TOPSECRET_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TOPSECRET_LOG_FORMAT"); v != "" {
		c.Log.Format = v
	}
	if v := os.Getenv("TOPSECRET_LISTEN"); v != "" {
		c.Server.Listen = v
	}
}

// ValidationError describes one invalid setting.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks every setting and reports the first problem found.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return ValidationError{"data_dir", "must not be empty"}
	}
	if !strings.HasPrefix(c.Extension, ".") || len(c.Extension) < 2 {
		return ValidationError{"extension", fmt.Sprintf("%q must start with a dot", c.Extension)}
	}
	if strings.ContainsAny(c.Extension, `/\`) {
		return ValidationError{"extension", fmt.Sprintf("%q must not contain path separators", c.Extension)}
	}
	if strings.TrimSpace(c.DefaultKey) == "" {
		return ValidationError{"default_key", "must not be empty"}
	}
	if _, err := c.SlogLevel(); err != nil {
		return ValidationError{"log.level", err.Error()}
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return ValidationError{"log.format", fmt.Sprintf("%q must be json or text", c.Log.Format)}
	}
	if _, _, err := net.SplitHostPort(c.Server.Listen); err != nil {
		return ValidationError{"server.listen", err.Error()}
	}
	return nil
}

// SlogLevel parses Log.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, err
	}
	return level, nil
}

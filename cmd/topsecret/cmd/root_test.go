package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcleod/topsecret/control"
)

type fixture struct {
	dataDir string
	keyDir  string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	t.Chdir(t.TempDir())

	f := fixture{dataDir: t.TempDir(), keyDir: t.TempDir()}
	write := func(dir, name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	write(f.dataDir, "fileb.txt", "edcba")
	write(f.dataDir, "filea.txt", "bcdea!\n")
	write(f.dataDir, "notes.md", "ignored")
	write(f.keyDir, "key.txt", "abcde\nbcdea\n")
	write(f.keyDir, "alt.key", "abcde\nedcba\n")
	write(f.keyDir, "bad.key", "abc\nabcd\n")
	return f
}

func (f fixture) flags(args ...string) []string {
	return append([]string{"--data-dir", f.dataDir, "--key-dir", f.keyDir}, args...)
}

func runCLI(t *testing.T, stdin io.Reader, args ...string) (string, string, int) {
	t.Helper()
	configPath, dataDir, keyDir, logLevel = "", "", "", ""
	listenAddr, encodeKey, verifyJSONOutput = "", "", false
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	rootCmd.SetIn(stdin)

	var stdout, stderr bytes.Buffer
	code := execute(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), code
}

func TestRoot_List(t *testing.T) {
	f := newFixture(t)

	stdout, stderr, code := runCLI(t, nil, f.flags()...)
	assert.Equal(t, ExitOK, code, stderr)
	assert.Equal(t, "01 filea.txt\n02 fileb.txt\n", stdout)
	assert.Empty(t, stderr)
}

func TestRoot_ListEmpty(t *testing.T) {
	f := newFixture(t)
	f.dataDir = t.TempDir()

	stdout, _, code := runCLI(t, nil, f.flags()...)
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, control.NoFilesFound+"\n", stdout)
}

func TestRoot_Decode(t *testing.T) {
	f := newFixture(t)

	t.Run("default key", func(t *testing.T) {
		stdout, stderr, code := runCLI(t, nil, f.flags("01")...)
		assert.Equal(t, ExitOK, code, stderr)
		assert.Equal(t, "abcde!\n", stdout)
	})

	t.Run("named key", func(t *testing.T) {
		stdout, stderr, code := runCLI(t, nil, f.flags("02", "alt.key")...)
		assert.Equal(t, ExitOK, code, stderr)
		assert.Equal(t, "abcde\n", stdout)
	})

	t.Run("key path given verbatim", func(t *testing.T) {
		stdout, stderr, code := runCLI(t, nil, f.flags("02", filepath.Join(f.keyDir, "alt.key"))...)
		assert.Equal(t, ExitOK, code, stderr)
		assert.Equal(t, "abcde\n", stdout)
	})
}

func TestRoot_Failures(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"out of range", []string{"03"}, ExitOutOfRange},
		{"zero", []string{"00"}, ExitOutOfRange},
		{"one digit", []string{"1"}, ExitInvalidInput},
		{"three digits", []string{"001"}, ExitInvalidInput},
		{"letters", []string{"ab"}, ExitInvalidInput},
		{"too many arguments", []string{"01", "key.txt", "extra"}, ExitInvalidInput},
		{"blank key", []string{"01", " "}, ExitInvalidInput},
		{"missing key", []string{"01", "missing.key"}, ExitKeyUnavailable},
		{"invalid key", []string{"01", "bad.key"}, ExitKeyUnavailable},
		{"unknown flag", []string{"--bogus"}, ExitInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := runCLI(t, nil, f.flags(tt.args...)...)
			assert.Equal(t, tt.code, code)
			assert.Empty(t, stdout)
			assert.True(t, strings.HasPrefix(stderr, "Error: "), stderr)
		})
	}
}

func TestRoot_ConfigFile(t *testing.T) {
	f := newFixture(t)
	// newFixture changed into an empty directory; topsecret.toml is picked up
	// from there.
	toml := fmt.Sprintf("data_dir = %q\nkey_dir = %q\ndefault_key = \"alt.key\"\n", f.dataDir, f.keyDir)
	require.NoError(t, os.WriteFile("topsecret.toml", []byte(toml), 0o600))

	stdout, stderr, code := runCLI(t, nil, "02")
	assert.Equal(t, ExitOK, code, stderr)
	assert.Equal(t, "abcde\n", stdout)
}

func TestRoot_InvalidConfig(t *testing.T) {
	f := newFixture(t)

	_, stderr, code := runCLI(t, nil, f.flags("--log-level", "loud")...)
	assert.Equal(t, ExitInvalidInput, code)
	assert.Contains(t, stderr, "log.level")

	_, _, code = runCLI(t, nil, "--config", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Equal(t, ExitUnexpected, code)
}

func TestEncode(t *testing.T) {
	f := newFixture(t)
	plain := filepath.Join(t.TempDir(), "plain.txt")
	require.NoError(t, os.WriteFile(plain, []byte("abcde!\n"), 0o600))

	t.Run("file", func(t *testing.T) {
		stdout, stderr, code := runCLI(t, nil, f.flags("encode", plain)...)
		assert.Equal(t, ExitOK, code, stderr)
		assert.Equal(t, "bcdea!\n", stdout)
	})

	t.Run("stdin with named key", func(t *testing.T) {
		stdout, stderr, code := runCLI(t, strings.NewReader("abcde"), f.flags("encode", "--key", "alt.key")...)
		assert.Equal(t, ExitOK, code, stderr)
		assert.Equal(t, "edcba", stdout)
	})

	t.Run("encoded file decodes", func(t *testing.T) {
		encoded, _, code := runCLI(t, strings.NewReader("a bad cab"), f.flags("encode")...)
		require.Equal(t, ExitOK, code)
		require.NoError(t, os.WriteFile(filepath.Join(f.dataDir, "filec.txt"), []byte(encoded), 0o600))

		stdout, stderr, code := runCLI(t, nil, f.flags("03")...)
		assert.Equal(t, ExitOK, code, stderr)
		assert.Equal(t, "a bad cab\n", stdout)
	})

	t.Run("missing input", func(t *testing.T) {
		_, _, code := runCLI(t, nil, f.flags("encode", filepath.Join(t.TempDir(), "nope.txt"))...)
		assert.Equal(t, ExitFileUnreadable, code)
	})

	t.Run("invalid key", func(t *testing.T) {
		_, _, code := runCLI(t, nil, f.flags("encode", "--key", "bad.key", plain)...)
		assert.Equal(t, ExitKeyUnavailable, code)
	})
}

func TestVersion(t *testing.T) {
	t.Chdir(t.TempDir())
	stdout, _, code := runCLI(t, nil, "version")
	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "topsecret "+Version+"\n", stdout)
}

func TestValidateRootArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind control.Kind
	}{
		{"none", nil, ""},
		{"selection", []string{"07"}, ""},
		{"selection and key", []string{"07", "k.txt"}, ""},
		{"padded selection", []string{" 7"}, control.KindInvalidSelectionSyntax},
		{"signed", []string{"+1"}, control.KindInvalidSelectionSyntax},
		{"non-ascii digits", []string{"١٢"}, control.KindInvalidSelectionSyntax},
		{"empty key", []string{"07", ""}, control.KindInvalidArguments},
		{"three args", []string{"07", "k", "x"}, control.KindInvalidArguments},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRootArgs(rootCmd, tt.args)
			if tt.kind == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, control.IsKind(err, tt.kind), "got %v", err)
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{control.NewError(control.KindInvalidSelectionSyntax, "x"), ExitInvalidInput},
		{control.NewError(control.KindInvalidArguments, "x"), ExitInvalidInput},
		{control.NewError(control.KindSelectionOutOfRange, "x"), ExitOutOfRange},
		{control.NewError(control.KindFileUnreadable, "x"), ExitFileUnreadable},
		{fmt.Errorf("wrapped: %w", control.NewError(control.KindKeyUnavailable, "x")), ExitKeyUnavailable},
		{errors.New("boom"), ExitUnexpected},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.code, exitCode(tt.err), tt.err.Error())
	}
}

func TestWriteOutput(t *testing.T) {
	var buf bytes.Buffer
	writeOutput(&buf, "one")
	writeOutput(&buf, "two\n")
	writeOutput(&buf, "")
	assert.Equal(t, "one\ntwo\n\n", buf.String())
}

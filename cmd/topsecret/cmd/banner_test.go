package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	printBanner(&buf)
	assert.NotContains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "Version "+Version)

	f, err := os.Create(filepath.Join(t.TempDir(), "banner.out"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
	printBanner(f)

	data, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "\x1b[")
}

package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTOMLWithRecoveryCoercesLooseValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loose.toml")
	content := `
[detector]
min_seed_words = "15"
dictionary_path = "builtin"

[scan]
force_full_scan = "true"
max_per_resource = 2.0
bogus = [1, 2]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	data, err := ParseTOMLWithRecovery(path)
	require.NoError(t, err)

	detector, ok := ExtractSection(data, "detector")
	require.True(t, ok)
	n, ok := ExtractInt(detector, "min_seed_words")
	assert.True(t, ok)
	assert.Equal(t, 15, n)
	s, ok := ExtractString(detector, "dictionary_path")
	assert.True(t, ok)
	assert.Equal(t, "builtin", s)

	scan, ok := ExtractSection(data, "scan")
	require.True(t, ok)
	b, ok := ExtractBool(scan, "force_full_scan")
	assert.True(t, ok)
	assert.True(t, b)
	n, ok = ExtractInt(scan, "max_per_resource")
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = ExtractInt(scan, "bogus")
	assert.False(t, ok)
	_, ok = ExtractInt(scan, "missing")
	assert.False(t, ok)
	_, ok = ExtractSection(data, "server")
	assert.False(t, ok)
}

func TestParseTOMLWithRecoveryBrokenSyntax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[detector\nmin_seed_words = "), 0o644))

	_, err := ParseTOMLWithRecovery(path)
	assert.Error(t, err)
}

func TestSaveAndLoadTOMLFile(t *testing.T) {
	type section struct {
		Name  string `toml:"name"`
		Count int    `toml:"count"`
	}
	path := filepath.Join(t.TempDir(), "out.toml")

	require.NoError(t, SaveTOMLFile(section{Name: "seed", Count: 3}, path))
	assert.True(t, FileExists(path))

	var got section
	require.NoError(t, LoadTOMLFile(path, &got))
	assert.Equal(t, section{Name: "seed", Count: 3}, got)
}

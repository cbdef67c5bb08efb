package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFiles_WalksDirectoriesAndKeepsFileArgs(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	nested := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(nested, 0o755))

	a := filepath.Join(dir, "a.hcl")
	b := filepath.Join(nested, "b.hcl")
	other := filepath.Join(dir, "notes.txt")
	for _, p := range []string{a, b, other} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o600))
	}

	// --- Act ---
	found, err := FindFiles(".hcl", dir, a, filepath.Join(dir, "missing.hcl"))

	// --- Assert ---
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{a, b}, found, "directory walk plus explicit file, de-duplicated, missing path skipped")
}

func TestFindFiles_EmptyExtensionPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { _, _ = FindFiles("") })
}

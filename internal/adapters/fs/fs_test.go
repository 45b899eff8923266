package fs_test

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/swatch/internal/adapters/fs"
	"go.trai.ch/swatch/internal/core/domain"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestWalker_WalkFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".git", "config.yaml"), "x")
	writeFile(t, filepath.Join(tmpDir, "node_modules", "pkg", "theme.yaml"), "x")
	writeFile(t, filepath.Join(tmpDir, "ignored", "theme.yaml"), "x")
	writeFile(t, filepath.Join(tmpDir, "themes", "app.yaml"), "x")
	writeFile(t, filepath.Join(tmpDir, "themes", "dark.JSONC"), "x")
	writeFile(t, filepath.Join(tmpDir, "README.md"), "x")

	walker := fs.NewWalker()
	got := slices.Collect(walker.WalkFiles(tmpDir, domain.ThemeExtensions, []string{"ignored"}))
	slices.Sort(got)

	assert.Equal(t, []string{
		filepath.Join(tmpDir, "themes", "app.yaml"),
		filepath.Join(tmpDir, "themes", "dark.JSONC"),
	}, got)
}

func TestWalker_WalkFiles_AllExtensions(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.txt"), "x")
	writeFile(t, filepath.Join(tmpDir, "b.yaml"), "x")

	got := slices.Collect(fs.NewWalker().WalkFiles(tmpDir, nil, nil))
	assert.Len(t, got, 2)
}

func TestWalker_WalkFiles_StopsEarly(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "a.yaml"), "x")
	writeFile(t, filepath.Join(tmpDir, "b.yaml"), "x")

	count := 0
	for range fs.NewWalker().WalkFiles(tmpDir, nil, nil) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestHasher_Fingerprint(t *testing.T) {
	h := fs.NewHasher()

	a := h.Fingerprint([]byte("ui: {}"))
	b := h.Fingerprint([]byte("ui: {}"))
	c := h.Fingerprint([]byte("ui: {card: {}}"))

	assert.Len(t, a, 16)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, "ef46db3751d8e999", h.Fingerprint(nil))
}

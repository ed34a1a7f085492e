package assets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLibrary_Import(t *testing.T) {
	t.Chdir(t.TempDir())
	lib, err := New("images", zerolog.Nop())
	require.NoError(t, err)

	src := writeSource(t, "photo.png", "pixels")

	rel, ok := lib.Import(src)
	require.True(t, ok)
	require.Equal(t, "images/photo.png", rel)

	data, err := os.ReadFile(filepath.Join("images", "photo.png"))
	require.NoError(t, err)
	require.Equal(t, "pixels", string(data))
}

func TestLibrary_ImportNoResult(t *testing.T) {
	t.Chdir(t.TempDir())
	lib, err := New("images", zerolog.Nop())
	require.NoError(t, err)

	rel, ok := lib.Import("")
	require.False(t, ok)
	require.Empty(t, rel)

	rel, ok = lib.Import(filepath.Join("nowhere", "missing.png"))
	require.False(t, ok)
	require.Empty(t, rel)
}

func TestLibrary_ImportCollisionSuffixes(t *testing.T) {
	t.Chdir(t.TempDir())
	lib, err := New("images", zerolog.Nop())
	require.NoError(t, err)

	first := writeSource(t, "photo.png", "first")
	second := writeSource(t, "photo.png", "second")
	third := writeSource(t, "photo.png", "third")

	relA, ok := lib.Import(first)
	require.True(t, ok)
	relB, ok := lib.Import(second)
	require.True(t, ok)
	relC, ok := lib.Import(third)
	require.True(t, ok)

	require.Equal(t, "images/photo.png", relA)
	require.Equal(t, "images/photo_1.png", relB)
	require.Equal(t, "images/photo_2.png", relC)

	// The earlier imports are left untouched.
	data, err := os.ReadFile(filepath.Join("images", "photo.png"))
	require.NoError(t, err)
	require.Equal(t, "first", string(data))
}

func TestLibrary_ListAndRemove(t *testing.T) {
	t.Chdir(t.TempDir())
	lib, err := New("images", zerolog.Nop())
	require.NoError(t, err)

	_, ok := lib.Import(writeSource(t, "a.png", "a"))
	require.True(t, ok)
	_, ok = lib.Import(writeSource(t, "b.png", "b"))
	require.True(t, ok)

	names, err := lib.List()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a.png", "b.png"}, names)

	require.NoError(t, lib.Remove("a.png"))
	names, err = lib.List()
	require.NoError(t, err)
	require.Equal(t, []string{"b.png"}, names)
}

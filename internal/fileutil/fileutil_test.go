package fileutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "c.txt")

	require.NoError(t, WriteText(path, "content"))

	got, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "content", got)
}

func TestWriteTextOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")

	require.NoError(t, WriteText(path, "first"))
	require.NoError(t, WriteText(path, "second"))

	got, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestReadTextMissing(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, Exists(dir))
	assert.False(t, Exists(filepath.Join(dir, "nope")))
}

package localstorage

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "captures", "nested")
	s := NewLocalStorage(dir)

	require.NoError(t, s.Init())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPathStaysInsideBaseDir(t *testing.T) {
	s := NewLocalStorage("/var/captures")

	assert.Equal(t, "/var/captures/garden_img_1.jpg", s.Path("garden_img_1.jpg"))
	assert.Equal(t, "/var/captures/passwd", s.Path("../../etc/passwd"))
}

func TestOpenReadsCapture(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	require.NoError(t, os.WriteFile(s.Path("a.jpg"), []byte("jpeg"), 0644))

	rc, err := s.Open("a.jpg")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))
}

func TestOpenMissingFile(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	_, err := s.Open("missing.jpg")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRemove(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	require.NoError(t, os.WriteFile(s.Path("a.jpg"), []byte("jpeg"), 0644))

	require.NoError(t, s.Remove("a.jpg"))

	_, err := os.Stat(s.Path("a.jpg"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRemoveMissingFileIsNoop(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	assert.NoError(t, s.Remove("never-written.jpg"))
}

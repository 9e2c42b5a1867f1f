package bolt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jbaldus/shorten/cache"
)

func TestStoreRoundTrip(t *testing.T) {
	s, err := New(cache.Options{Path: t.TempDir()})
	require.NoError(t, err)
	defer s.Close()

	_, ok := s.Get("https://www.example.com")
	assert.False(t, ok)

	require.NoError(t, s.Put("https://www.example.com", "https://is.gd/AbCd1"))

	shortened, ok := s.Get("https://www.example.com")
	assert.True(t, ok)
	assert.Equal(t, "https://is.gd/AbCd1", shortened)
}

func TestStoreArbitraryContent(t *testing.T) {
	s, err := New(cache.Options{Path: t.TempDir()})
	require.NoError(t, err)
	defer s.Close()

	// spaces, punctuation and the old text format delimiter must survive
	key := `https://example.com/a path/?q=1 2&x="y"` + "\n"
	value := "https://is.gd/ spa ced"
	require.NoError(t, s.Put(key, value))

	got, ok := s.Get(key)
	assert.True(t, ok)
	assert.Equal(t, value, got)
}

func TestStoreOverwrite(t *testing.T) {
	s, err := New(cache.Options{Path: t.TempDir()})
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put("https://example.com", "https://is.gd/old"))
	require.NoError(t, s.Put("https://example.com", "https://is.gd/new"))

	shortened, ok := s.Get("https://example.com")
	assert.True(t, ok)
	assert.Equal(t, "https://is.gd/new", shortened)
}

func TestStorePersists(t *testing.T) {
	dir := t.TempDir()

	s, err := New(cache.Options{Path: dir})
	require.NoError(t, err)
	require.NoError(t, s.Put("https://example.com", "https://is.gd/AbCd1"))
	require.NoError(t, s.Close())

	s, err = New(cache.Options{Path: dir})
	require.NoError(t, err)
	defer s.Close()

	shortened, ok := s.Get("https://example.com")
	assert.True(t, ok)
	assert.Equal(t, "https://is.gd/AbCd1", shortened)
}

func TestNewUnwritablePath(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits are not enforced")
	}
	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0o500))

	_, err := New(cache.Options{Path: filepath.Join(dir, "cache")})
	assert.Error(t, err)
}

func TestNewEmptyPath(t *testing.T) {
	_, err := New(cache.Options{})
	assert.Error(t, err)
}

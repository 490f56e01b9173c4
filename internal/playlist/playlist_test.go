package playlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddListRemoveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := &Store{Dir: dir, Root: "/music"}

	require.NoError(t, s.Add("favorites.m3u", "a.mp3"))
	require.NoError(t, s.Add("favorites.m3u", "b.mp3"))

	songs, err := s.List("favorites.m3u")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.mp3", "b.mp3"}, songs)

	require.NoError(t, s.Remove("favorites.m3u", 0))
	songs, err = s.List("favorites.m3u")
	require.NoError(t, err)
	assert.Equal(t, []string{"b.mp3"}, songs)
}

func TestRemoveOutOfRange(t *testing.T) {
	dir := t.TempDir()
	s := &Store{Dir: dir}
	require.NoError(t, s.Add("p.m3u", "a.mp3"))
	assert.Error(t, s.Remove("p.m3u", 5))
}

func TestSaveWritesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	s := &Store{Root: "/music"}
	out := filepath.Join(dir, "out.m3u")

	require.NoError(t, s.Save(out, []string{"/music/a.mp3", "/music/sub/b.mp3"}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "a.mp3\nsub/b.mp3\n", string(data))
}

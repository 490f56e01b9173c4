package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndRemove(t *testing.T) {
	q := New()
	ids := q.Add([]string{"/a.mp3", "/b.mp3", "/c.mp3"}, -1)
	require.Equal(t, []uint64{0, 1, 2}, ids)

	q.Remove([]uint64{1})
	entries := q.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, uint64(0), entries[0].ID)
	assert.Equal(t, uint64(2), entries[1].ID)

	// ids are never reused: the next Add starts from 3, not 1.
	more := q.Add([]string{"/d.mp3"}, -1)
	assert.Equal(t, []uint64{3}, more)
}

func TestTraversingSequential(t *testing.T) {
	q := New()
	q.Add([]string{"/a.mp3", "/b.mp3", "/c.mp3"}, -1)
	q.SetMode(Sequential)

	e, ok := q.Next()
	require.True(t, ok)
	assert.Equal(t, uint64(0), e.ID)

	e, ok = q.Next()
	require.True(t, ok)
	assert.Equal(t, uint64(1), e.ID)

	e, ok = q.Previous()
	require.True(t, ok)
	assert.Equal(t, uint64(0), e.ID)

	_, ok = q.Previous()
	assert.False(t, ok, "previous before the first entry should stop")
}

func TestSingleModeNextStops(t *testing.T) {
	q := New()
	q.Add([]string{"/a.mp3", "/b.mp3"}, -1)
	q.SetMode(Single)
	q.Play(0)

	_, ok := q.Next()
	assert.False(t, ok)
}

func TestRandomExhaustsPoolThenRegenerates(t *testing.T) {
	q := New()
	q.Add([]string{"/a.mp3", "/b.mp3", "/c.mp3"}, -1)
	q.SetMode(Random)

	seen := map[uint64]bool{}
	for i := 0; i < 3; i++ {
		e, ok := q.Next()
		require.True(t, ok)
		seen[e.ID] = true
	}
	assert.Len(t, seen, 3, "three draws from a pool of three should cover every id")

	_, ok := q.Next()
	assert.True(t, ok, "pool regenerates once exhausted")
}

func TestRandomPreviousReplaysHistory(t *testing.T) {
	q := New()
	q.Add([]string{"/a.mp3", "/b.mp3", "/c.mp3"}, -1)
	q.SetMode(Random)

	first, _ := q.Next()
	second, _ := q.Next()
	require.NotEqual(t, first.ID, second.ID)

	prev, ok := q.Previous()
	require.True(t, ok)
	assert.Equal(t, first.ID, prev.ID)
}

// Package queue implements the ordered playback queue: stable entry ids,
// playback mode (sequential/random/single) and the random-mode unplayed
// pool. Grounded on original_source/src/model/queue.rs, rendered in the
// teacher's internal/queue Manager idiom (mutex-guarded struct, a
// ChangeCallback invoked after each change to the entry list).
package queue

import (
	"math/rand"
	"sync"
)

// Mode selects next()/previous() semantics.
type Mode int

const (
	Sequential Mode = iota
	Single
	Random
)

// Entry pairs a stable, never-reused id with a catalog path.
type Entry struct {
	ID   uint64
	Path string
}

// ChangeCallback is invoked after Add, Remove and Clear, mirroring the
// teacher's queue.ChangeCallback used to drive persistence/notifications.
// Mode changes and moves of the current position do not invoke it.
type ChangeCallback func()

// Queue is guarded by a single mutex per spec.md §5: all operations
// complete quickly and never block on I/O while holding mu.
type Queue struct {
	mu       sync.Mutex
	entries  []Entry
	pos      int // index into entries, -1 when no current entry
	nextID   uint64
	mode     Mode
	pool     map[uint64]struct{} // unplayed pool for random mode
	history  []uint64            // most-recently-played ids, for random "previous"
	rng      *rand.Rand
	onChange ChangeCallback
}

func New() *Queue {
	return &Queue{
		pos:  -1,
		pool: make(map[uint64]struct{}),
		rng:  rand.New(rand.NewSource(randSeed())),
	}
}

func (q *Queue) SetOnChange(cb ChangeCallback) { q.onChange = cb }

func (q *Queue) notify() {
	if q.onChange != nil {
		q.onChange()
	}
}

// Add appends paths, or inserts at pos when pos is within [0, len(entries)].
// Returns the ids assigned, in order.
func (q *Queue) Add(paths []string, pos int) []uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()

	ids := make([]uint64, len(paths))
	newEntries := make([]Entry, len(paths))
	for i, p := range paths {
		id := q.nextID
		q.nextID++
		newEntries[i] = Entry{ID: id, Path: p}
		ids[i] = id
	}

	if pos < 0 || pos > len(q.entries) {
		q.entries = append(q.entries, newEntries...)
	} else {
		merged := make([]Entry, 0, len(q.entries)+len(newEntries))
		merged = append(merged, q.entries[:pos]...)
		merged = append(merged, newEntries...)
		merged = append(merged, q.entries[pos:]...)
		if q.pos >= pos {
			q.pos += len(newEntries)
		}
		q.entries = merged
	}
	q.notify()
	return ids
}

// Remove deletes entries matching ids, preserving relative order. Stale ids
// are ignored. The current position tracks its entry by id, not index.
func (q *Queue) Remove(ids []uint64) {
	q.mu.Lock()
	defer q.mu.Unlock()

	toRemove := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		toRemove[id] = struct{}{}
	}

	var curID uint64
	hadCur := q.pos >= 0 && q.pos < len(q.entries)
	if hadCur {
		curID = q.entries[q.pos].ID
	}

	kept := q.entries[:0:0]
	for _, e := range q.entries {
		if _, drop := toRemove[e.ID]; !drop {
			kept = append(kept, e)
		} else {
			delete(q.pool, e.ID)
		}
	}
	q.entries = kept

	if hadCur {
		if _, gone := toRemove[curID]; gone {
			q.pos = -1
		} else {
			for i, e := range q.entries {
				if e.ID == curID {
					q.pos = i
					break
				}
			}
		}
	}
	q.notify()
}

// Clear empties the queue and resets the unplayed pool and current position.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = nil
	q.pos = -1
	q.pool = make(map[uint64]struct{})
	q.history = nil
	q.notify()
}

// Play sets the current position to the entry with id. Returns false if no
// such entry exists.
func (q *Queue) Play(id uint64) (Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, e := range q.entries {
		if e.ID == id {
			q.setCurrent(i)
			return e, true
		}
	}
	return Entry{}, false
}

func (q *Queue) setCurrent(i int) {
	q.pos = i
	if i >= 0 && i < len(q.entries) {
		id := q.entries[i].ID
		delete(q.pool, id)
		q.history = append(q.history, id)
	}
}

// Current returns the entry at the current position, if any.
func (q *Queue) Current() (Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pos < 0 || q.pos >= len(q.entries) {
		return Entry{}, false
	}
	return q.entries[q.pos], true
}

// Entries returns a copy of the current ordered entries.
func (q *Queue) Entries() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Entry, len(q.entries))
	copy(out, q.entries)
	return out
}

// SetMode switches playback mode. Switching into Random regenerates the
// pool from the full current queue, per spec.md §4.3.
func (q *Queue) SetMode(m Mode) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.mode = m
	if m == Random {
		q.regeneratePool()
	}
}

func (q *Queue) Mode() Mode {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.mode
}

func (q *Queue) regeneratePool() {
	q.pool = make(map[uint64]struct{}, len(q.entries))
	for _, e := range q.entries {
		q.pool[e.ID] = struct{}{}
	}
}

// Next advances according to the current mode. ok is false when playback
// should stop (out-of-range in sequential/single, or an empty queue).
func (q *Queue) Next() (Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch q.mode {
	case Sequential:
		return q.nextSequential()
	case Single:
		return Entry{}, false
	case Random:
		return q.nextRandom()
	default:
		return Entry{}, false
	}
}

func (q *Queue) nextSequential() (Entry, bool) {
	next := q.pos + 1
	if next < 0 || next >= len(q.entries) {
		q.pos = -1
		return Entry{}, false
	}
	q.setCurrent(next)
	return q.entries[next], true
}

func (q *Queue) nextRandom() (Entry, bool) {
	if len(q.entries) == 0 {
		q.pos = -1
		return Entry{}, false
	}
	if len(q.pool) == 0 {
		var justFinished uint64
		hadCur := q.pos >= 0 && q.pos < len(q.entries)
		if hadCur {
			justFinished = q.entries[q.pos].ID
		}
		q.regeneratePool()
		if hadCur {
			delete(q.pool, justFinished)
		}
		if len(q.pool) == 0 {
			// Only entry in the queue is the one just finished: replay it.
			q.regeneratePool()
		}
	}
	ids := make([]uint64, 0, len(q.pool))
	for id := range q.pool {
		ids = append(ids, id)
	}
	pick := ids[q.rng.Intn(len(ids))]
	for i, e := range q.entries {
		if e.ID == pick {
			q.setCurrent(i)
			return e, true
		}
	}
	return Entry{}, false
}

// Previous delegates to mode: sequential/single move back one position;
// random replays the most recently played id from history.
func (q *Queue) Previous() (Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	switch q.mode {
	case Random:
		return q.previousRandom()
	default: // Sequential and Single both behave as sequential previous
		prev := q.pos - 1
		if prev < 0 || prev >= len(q.entries) {
			q.pos = -1
			return Entry{}, false
		}
		q.setCurrent(prev)
		return q.entries[prev], true
	}
}

func (q *Queue) previousRandom() (Entry, bool) {
	// history's last entry is the current track; the one before it is
	// "the previous song" per spec.md §9's resolved open question.
	if len(q.history) < 2 {
		return Entry{}, false
	}
	target := q.history[len(q.history)-2]
	for i, e := range q.entries {
		if e.ID == target {
			q.pos = i
			q.history = append(q.history, target)
			return e, true
		}
	}
	return Entry{}, false
}

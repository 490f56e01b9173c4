// Package catalog implements the in-memory tag-indexed music catalog:
// scan, incremental update, directory listing, metadata lookup and the
// select query pipeline.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/alfazet/musing/internal/apperr"
	"github.com/alfazet/musing/internal/model"
)

// snapshot is the catalog's immutable state at one point in time. Readers
// grab a reference to the current snapshot and never see a partial update,
// per spec.md §5: the catalog is swapped wholesale, never mutated in place.
type snapshot struct {
	byPath map[string]*model.Song
	byDir  map[string][]*model.Song
}

// Catalog is a read-mostly structure rooted at Root. Grounded on
// original_source/src/database.rs's Database, adapted to Go's
// atomic.Pointer-swap idiom in place of Rust's RwLock<Vec<DataRow>> (the
// teacher repo has no direct analogue; this is the standard Go rendition
// of spec.md §9's "immutable snapshot swapped under an exclusive lock").
type Catalog struct {
	Root string
	log  zerolog.Logger

	cur    atomic.Pointer[snapshot]
	mu     sync.Mutex // serializes scan/update writers only
}

func New(root string, log zerolog.Logger) *Catalog {
	c := &Catalog{Root: root, log: log.With().Str("component", "catalog").Logger()}
	c.cur.Store(&snapshot{byPath: map[string]*model.Song{}, byDir: map[string][]*model.Song{}})
	return c
}

func buildIndexes(songs map[string]*model.Song) *snapshot {
	byDir := make(map[string][]*model.Song)
	for _, s := range songs {
		dir := filepath.Dir(s.Path)
		byDir[dir] = append(byDir[dir], s)
	}
	for _, list := range byDir {
		sort.Slice(list, func(i, j int) bool { return list[i].Path < list[j].Path })
	}
	return &snapshot{byPath: songs, byDir: byDir}
}

// Scan recursively walks Root and replaces the catalog wholesale.
func (c *Catalog) Scan() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	songs := make(map[string]*model.Song)
	err := filepath.Walk(c.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if !supportedExt(path) {
			return nil
		}
		s, err := extract(path, info)
		if err != nil {
			c.log.Debug().Err(err).Str("path", path).Msg("skipping unreadable file")
			return nil
		}
		songs[s.Path] = s
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrIO, err)
	}
	c.cur.Store(buildIndexes(songs))
	c.log.Info().Int("count", len(songs)).Msg("scan complete")
	return nil
}

// Update performs incremental reconciliation: drop records for files that
// vanished, re-extract records whose mtime changed, and add newly
// discovered files. The result is installed atomically.
func (c *Catalog) Update() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.cur.Load()
	next := make(map[string]*model.Song, len(prev.byPath))

	for path, old := range prev.byPath {
		info, err := os.Stat(path)
		if err != nil {
			continue // file gone: dropped
		}
		if info.ModTime().Equal(old.ModTime) {
			next[path] = old
			continue
		}
		s, err := extract(path, info)
		if err != nil {
			continue // unreadable now: treat like removal
		}
		next[path] = s
	}

	err := filepath.Walk(c.Root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || !supportedExt(path) {
			return nil
		}
		abs, _ := filepath.Abs(path)
		if _, ok := next[abs]; ok {
			return nil
		}
		s, err := extract(path, info)
		if err != nil {
			return nil
		}
		next[s.Path] = s
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrIO, err)
	}

	c.cur.Store(buildIndexes(next))
	return nil
}

func supportedExt(path string) bool {
	_, ok := model.SupportedExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Ls returns the absolute, sorted paths of songs whose parent directory
// equals the canonicalized dir.
func (c *Catalog) Ls(dir string) ([]string, error) {
	abs := c.resolve(dir)
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", apperr.ErrInvalidPath, dir)
	}
	snap := c.cur.Load()
	list := snap.byDir[abs]
	paths := make([]string, len(list))
	for i, s := range list {
		paths[i] = s.Path
	}
	sort.Strings(paths)
	return paths, nil
}

func (c *Catalog) resolve(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(c.Root, p)
}

// Metadata returns, for each path, a mapping restricted to tags (or every
// supported tag when all is true). Missing paths yield an empty mapping at
// the same position.
func (c *Catalog) Metadata(paths []string, tags []model.Tag, all bool) []map[model.Tag]string {
	snap := c.cur.Load()
	out := make([]map[model.Tag]string, len(paths))
	for i, p := range paths {
		abs := c.resolve(p)
		s, ok := snap.byPath[abs]
		if !ok {
			out[i] = map[model.Tag]string{}
			continue
		}
		if all {
			cp := make(map[model.Tag]string, len(s.Tags))
			for k, v := range s.Tags {
				cp[k] = v
			}
			out[i] = cp
			continue
		}
		m := make(map[model.Tag]string, len(tags))
		for _, t := range tags {
			if v, ok := s.TagValue(t); ok {
				m[t] = v
			}
		}
		out[i] = m
	}
	return out
}

// Lookup returns the record for an exact catalog path, if present.
func (c *Catalog) Lookup(path string) (*model.Song, bool) {
	snap := c.cur.Load()
	s, ok := snap.byPath[c.resolve(path)]
	return s, ok
}

// All returns every indexed song, for select's full scan.
func (c *Catalog) All() []*model.Song {
	snap := c.cur.Load()
	out := make([]*model.Song, 0, len(snap.byPath))
	for _, s := range snap.byPath {
		out = append(out, s)
	}
	return out
}

// Package playlist implements M3U read/append/remove/save against a
// configured playlist directory, per spec.md §4.7. The format is a plain
// one-path-per-line text file; no library in the example pack covers M3U,
// so this is hand-rolled on bufio/os rather than grounded on a specific
// teacher file — the only stdlib-justified component in the repo, per
// DESIGN.md.
package playlist

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alfazet/musing/internal/apperr"
)

// Store resolves playlist names against a configured directory.
type Store struct {
	Dir  string
	Root string // library root, for save()'s relative-path rendering
}

func (s *Store) path(name string) string {
	return filepath.Join(s.Dir, name)
}

// List returns the paths in a playlist file, in file order, relative to
// the library root as written (spec.md §4.7's listsongs). Lines starting
// with '#' (M3U headers like #EXTM3U, #EXTINF) are not songs; filtered per
// original_source/src/model/playlist.rs:19.
func (s *Store) List(name string) ([]string, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInvalidPath, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrIO, err)
	}
	return lines, nil
}

// Add appends song as one line, creating the file if absent.
func (s *Store) Add(name, song string) error {
	f, err := os.OpenFile(s.path(name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrIO, err)
	}
	defer f.Close()
	if _, err := f.WriteString(song + "\n"); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrIO, err)
	}
	return nil
}

// Remove deletes the pos-th song (zero-indexed) of the list List returns
// and rewrites the file with the remaining songs; '#' lines and blank
// lines are not written back.
func (s *Store) Remove(name string, pos int) error {
	lines, err := s.List(name)
	if err != nil {
		return err
	}
	if pos < 0 || pos >= len(lines) {
		return fmt.Errorf("%w: pos %d out of range", apperr.ErrOutOfRange, pos)
	}
	lines = append(lines[:pos], lines[pos+1:]...)
	return os.WriteFile(s.path(name), []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}

// ListPlaylists returns the names of M3U files in Dir, for the state
// broadcaster's "playlists" field (spec.md §4.5).
func (s *Store) ListPlaylists() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrIO, err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".m3u") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Save writes paths as one song per line to an M3U file at path, each
// rendered relative to the library root; a path that cannot be made
// relative to the root is written as given.
func (s *Store) Save(path string, paths []string) error {
	var b strings.Builder
	for _, p := range paths {
		rel, err := filepath.Rel(s.Root, p)
		if err != nil {
			rel = p
		}
		b.WriteString(rel)
		b.WriteString("\n")
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrIO, err)
	}
	return nil
}

package server

import (
	"fmt"
	"strings"

	"github.com/alfazet/musing/internal/apperr"
	"github.com/alfazet/musing/internal/transport"
)

func handleAddPlaylist(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var playlist, song string
	if _, err := req.Arg("playlist", &playlist); err != nil {
		return nil, fmt.Errorf("%w: playlist", apperr.ErrMalformedRequest)
	}
	if _, err := req.Arg("song", &song); err != nil {
		return nil, fmt.Errorf("%w: song", apperr.ErrMalformedRequest)
	}
	if err := s.store.Add(playlist, song); err != nil {
		return nil, err
	}
	return transport.OK(nil), nil
}

func handleListSongs(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var playlist string
	if _, err := req.Arg("playlist", &playlist); err != nil {
		return nil, fmt.Errorf("%w: playlist", apperr.ErrMalformedRequest)
	}
	songs, err := s.store.List(playlist)
	if err != nil {
		return nil, err
	}
	return transport.OK(map[string]any{"songs": songs}), nil
}

func handleRemovePlaylist(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var playlist string
	var pos int
	if _, err := req.Arg("playlist", &playlist); err != nil {
		return nil, fmt.Errorf("%w: playlist", apperr.ErrMalformedRequest)
	}
	if _, err := req.Arg("pos", &pos); err != nil {
		return nil, fmt.Errorf("%w: pos", apperr.ErrMalformedRequest)
	}
	if err := s.store.Remove(playlist, pos); err != nil {
		return nil, err
	}
	return transport.OK(nil), nil
}

func handleSave(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var path string
	if _, err := req.Arg("path", &path); err != nil {
		return nil, fmt.Errorf("%w: path", apperr.ErrMalformedRequest)
	}
	entries := s.queue.Entries()
	paths := make([]string, len(entries))
	for i, e := range entries {
		paths[i] = e.Path
	}
	if err := s.store.Save(path, paths); err != nil {
		return nil, err
	}
	return transport.OK(nil), nil
}

// handleLoad implements spec.md §4.6's partial-success exception: songs not
// in the catalog are reported by name, but songs that were found are still
// inserted into the queue.
func handleLoad(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var playlist string
	if _, err := req.Arg("playlist", &playlist); err != nil {
		return nil, fmt.Errorf("%w: playlist", apperr.ErrMalformedRequest)
	}
	var rng [2]int
	hasRange, _ := req.Arg("range", &rng)
	pos := -1
	req.Arg("pos", &pos)

	all, err := s.store.List(playlist)
	if err != nil {
		return nil, err
	}
	selected := all
	if hasRange {
		start, end := rng[0], rng[1]
		if start < 0 {
			start = 0
		}
		if end > len(all) {
			end = len(all)
		}
		if start > end {
			start = end
		}
		selected = all[start:end]
	}

	found, missing := resolveCatalogPaths(s, selected)
	if len(found) > 0 {
		s.queue.Add(found, pos)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", apperr.ErrNotInCatalog, strings.Join(missing, ", "))
	}
	return transport.OK(nil), nil
}

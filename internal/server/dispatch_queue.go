package server

import (
	"fmt"
	"strings"

	"github.com/alfazet/musing/internal/apperr"
	"github.com/alfazet/musing/internal/queue"
	"github.com/alfazet/musing/internal/transport"
)

// handleAddQueue resolves each path against the catalog before enqueuing,
// per spec.md §7: not-in-catalog applies to any request except load, which
// alone tolerates partial membership. Grounded on
// original_source/src/player.rs:421's add_to_queue, which resolves every
// path via database.try_to_abs_path and only enqueues resolved entries.
func handleAddQueue(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var paths []string
	if _, err := req.Arg("paths", &paths); err != nil {
		return nil, fmt.Errorf("%w: paths", apperr.ErrMalformedRequest)
	}
	pos := -1
	req.Arg("pos", &pos)

	resolved, missing := resolveCatalogPaths(s, paths)
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", apperr.ErrNotInCatalog, strings.Join(missing, ", "))
	}
	s.queue.Add(resolved, pos)
	return transport.OK(nil), nil
}

// resolveCatalogPaths looks up each path in the catalog, returning the
// catalog's absolute path for every hit and the original string for every
// miss, in two parallel slices (not positionally aligned with the input).
func resolveCatalogPaths(s *Server, paths []string) (resolved, missing []string) {
	for _, p := range paths {
		if song, ok := s.catalog.Lookup(p); ok {
			resolved = append(resolved, song.Path)
		} else {
			missing = append(missing, p)
		}
	}
	return resolved, missing
}

func handlePlay(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var id uint64
	if _, err := req.Arg("id", &id); err != nil {
		return nil, fmt.Errorf("%w: id", apperr.ErrMalformedRequest)
	}
	entry, ok := s.queue.Play(id)
	if !ok {
		return nil, fmt.Errorf("%w: no such queue entry %d", apperr.ErrOutOfRange, id)
	}
	if err := s.player.Play(entry.ID, entry.Path); err != nil {
		return nil, err
	}
	return transport.OK(nil), nil
}

func handleRemoveQueue(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var ids []uint64
	if _, err := req.Arg("ids", &ids); err != nil {
		return nil, fmt.Errorf("%w: ids", apperr.ErrMalformedRequest)
	}
	s.queue.Remove(ids)
	return transport.OK(nil), nil
}

func handleClearQueue(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	s.queue.Clear()
	s.player.Stop()
	return transport.OK(nil), nil
}

func handleNext(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	advanceOrStop(s)
	return transport.OK(nil), nil
}

func handlePrevious(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	if entry, ok := s.queue.Previous(); ok {
		if err := s.player.Play(entry.ID, entry.Path); err != nil {
			return nil, err
		}
	} else {
		s.player.Stop()
	}
	return transport.OK(nil), nil
}

func advanceOrStop(s *Server) {
	if entry, ok := s.queue.Next(); ok {
		s.player.Play(entry.ID, entry.Path)
	} else {
		s.player.Stop()
	}
}

func handleModeSingle(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	s.queue.SetMode(queue.Single)
	return transport.OK(nil), nil
}

func handleModeRandom(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	s.queue.SetMode(queue.Random)
	return transport.OK(nil), nil
}

func handleModeSequential(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	s.queue.SetMode(queue.Sequential)
	return transport.OK(nil), nil
}

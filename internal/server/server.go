// Package server implements the TCP request dispatcher of spec.md §4.6:
// per-connection accept loop, framed request/response, routing by kind,
// and per-client delta-encoded state. Grounded on the teacher's
// internal/ipc/server.go Server/handleConnection shape (goroutine per
// connection, buffered reads, a central handler switch), adapted from
// newline-delimited JSON with an auth gate to length-prefixed JSON with no
// authentication, per spec.md §1's non-goals.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/alfazet/musing/internal/apperr"
	"github.com/alfazet/musing/internal/catalog"
	"github.com/alfazet/musing/internal/config"
	"github.com/alfazet/musing/internal/player"
	"github.com/alfazet/musing/internal/playlist"
	"github.com/alfazet/musing/internal/queue"
	"github.com/alfazet/musing/internal/transport"
)

const protocolVersion = "1"

// Server owns the shared catalog, queue, player and playlist store, and
// accepts connections on a single TCP listener per spec.md §6.
type Server struct {
	cfg      config.Config
	log      zerolog.Logger
	catalog  *catalog.Catalog
	queue    *queue.Queue
	player   *player.Player
	store    *playlist.Store
	handlers map[string]handlerFunc
}

func New(cfg config.Config, log zerolog.Logger, cat *catalog.Catalog, q *queue.Queue, p *player.Player, store *playlist.Store) *Server {
	s := &Server{cfg: cfg, log: log.With().Str("component", "server").Logger(), catalog: cat, queue: q, player: p, store: store}
	s.handlers = s.buildHandlers()

	p.SetOnTrackEnd(func(entryID uint64) {
		s.log.Debug().Uint64("entry_id", entryID).Msg("track finished, advancing queue")
		if next, ok := q.Next(); ok {
			if err := p.Play(next.ID, next.Path); err != nil {
				s.log.Warn().Err(err).Msg("auto-advance play failed")
			}
		}
	})
	return s
}

// Run listens on cfg.Port and serves connections until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", s.cfg.Port))
	if err != nil {
		return err
	}
	s.log.Info().Int("port", s.cfg.Port).Msg("listening")

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				return err
			}
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	sessionID := uuid.NewString()
	log := s.log.With().Str("session", sessionID).Logger()
	defer conn.Close()

	sess := newSession()

	greeting, _ := json.Marshal(transport.Greeting{Version: protocolVersion})
	if err := transport.WriteFrame(conn, greeting); err != nil {
		return
	}

	for {
		payload, err := transport.ReadFrame(conn)
		if err != nil {
			log.Debug().Err(err).Msg("connection closed")
			return
		}

		resp := s.dispatch(sess, payload, log)
		body, err := transport.EncodeResponse(resp)
		if err != nil {
			return
		}
		if err := transport.WriteFrame(conn, body); err != nil {
			return
		}
	}
}

func (s *Server) dispatch(sess *session, payload []byte, log zerolog.Logger) transport.Response {
	req, err := transport.DecodeRequest(payload)
	if err != nil {
		return transport.Err(apperr.Reason(fmt.Errorf("%w: %v", apperr.ErrMalformedRequest, err)))
	}

	h, ok := s.handlers[req.Kind]
	if !ok {
		return transport.Err(apperr.Reason(fmt.Errorf("%w: %s", apperr.ErrUnknownKind, req.Kind)))
	}

	resp, err := h(s, sess, req)
	if err != nil {
		return transport.Err(apperr.Reason(err))
	}
	return resp
}

type handlerFunc func(s *Server, sess *session, req transport.Request) (transport.Response, error)

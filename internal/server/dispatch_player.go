package server

import (
	"fmt"

	"github.com/alfazet/musing/internal/apperr"
	"github.com/alfazet/musing/internal/transport"
)

func handleVolume(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var delta int
	if _, err := req.Arg("delta", &delta); err != nil {
		return nil, fmt.Errorf("%w: delta", apperr.ErrMalformedRequest)
	}
	s.player.Volume(delta)
	return transport.OK(nil), nil
}

func handleSpeed(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var delta int
	if _, err := req.Arg("delta", &delta); err != nil {
		return nil, fmt.Errorf("%w: delta", apperr.ErrMalformedRequest)
	}
	s.player.Speed(delta)
	return transport.OK(nil), nil
}

func handleSeek(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var seconds int
	if _, err := req.Arg("seconds", &seconds); err != nil {
		return nil, fmt.Errorf("%w: seconds", apperr.ErrMalformedRequest)
	}
	if err := s.player.Seek(seconds); err != nil {
		return nil, err
	}
	return transport.OK(nil), nil
}

func handleGapless(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	snap := s.player.Snapshot()
	s.player.SetGapless(!snap.Gapless)
	return transport.OK(nil), nil
}

func handlePause(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	s.player.Pause()
	return transport.OK(nil), nil
}

func handleResume(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	s.player.Resume()
	return transport.OK(nil), nil
}

func handleToggle(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	s.player.Toggle()
	return transport.OK(nil), nil
}

func handleStop(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	s.player.Stop()
	return transport.OK(nil), nil
}

func handleDisable(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var device string
	if _, err := req.Arg("device", &device); err != nil {
		return nil, fmt.Errorf("%w: device", apperr.ErrMalformedRequest)
	}
	if err := s.player.Disable(device); err != nil {
		return nil, err
	}
	return transport.OK(nil), nil
}

func handleEnable(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	var device string
	if _, err := req.Arg("device", &device); err != nil {
		return nil, fmt.Errorf("%w: device", apperr.ErrMalformedRequest)
	}
	if err := s.player.Enable(device); err != nil {
		return nil, err
	}
	return transport.OK(nil), nil
}

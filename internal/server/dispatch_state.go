package server

import "github.com/alfazet/musing/internal/transport"

func handleState(s *Server, sess *session, req transport.Request) (transport.Response, error) {
	delta := sess.state.Diff(s.canonicalState())
	resp := transport.Response{"status": "ok"}
	for k, v := range delta {
		resp[k] = v
	}
	return resp, nil
}

package server

import "github.com/alfazet/musing/internal/broadcast"

// session is the connection-local record of spec.md §3: the last state
// snapshot sent to this client, used for delta encoding. Created on
// accept (in handleConn), destroyed on disconnect (falls out of scope).
type session struct {
	state *broadcast.Session
}

func newSession() *session {
	return &session{state: broadcast.NewSession()}
}

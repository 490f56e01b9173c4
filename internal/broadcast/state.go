// Package broadcast maintains per-client last-seen state snapshots and
// computes delta-encoded responses, per spec.md §4.5. Grounded on
// original_source/src/server.rs's response.diff_with(&prev_state); the
// teacher repo has no equivalent (its ipc/server.go pushes whole messages),
// so the diffing algorithm itself is new code built to the original's
// design, not adapted from a teacher file.
package broadcast

import "reflect"

// State is the canonical top-level key/value map named in spec.md §4.5:
// queue, current, cover_art, playback_state, playback_mode, gapless,
// volume, speed, timer, playlists, devices.
type State map[string]any

// Session holds one connection's last-sent snapshot for delta encoding.
type Session struct {
	last State
	sent bool
}

func NewSession() *Session {
	return &Session{}
}

// Diff computes the response for current against the session's last
// snapshot: on the first call every key is included; thereafter only keys
// whose value differs (by deep equality) are included. The session's
// snapshot is replaced with current.
func (s *Session) Diff(current State) State {
	if !s.sent {
		s.sent = true
		s.last = cloneState(current)
		return cloneState(current)
	}

	delta := State{}
	for k, v := range current {
		old, existed := s.last[k]
		if !existed || !reflect.DeepEqual(old, v) {
			delta[k] = v
		}
	}
	s.last = cloneState(current)
	return delta
}

func cloneState(s State) State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

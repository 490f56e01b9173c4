// Package player implements the playback state machine: it drives a
// decoder and output device (via github.com/gopxl/beep/v2), exposes
// volume/seek/speed/gapless/device controls, and advances through the
// queue via an OnTrackEnd callback. Grounded on
// original_source/src/player.rs's state machine and the GiGurra-tofu
// jukebox package's beep-backed decode/output seam
// (cmd/bird/jukebox/player_cgo.go).
package player

// Kind is the player's tagged-variant state, per spec.md §3.
type Kind int

const (
	Stopped Kind = iota
	Playing
	Paused
)

// Snapshot is a point-in-time read of everything the state broadcaster
// needs to build the canonical {playback_state, current, timer, volume,
// speed, gapless, devices} keys.
type Snapshot struct {
	Kind    Kind
	EntryID uint64
	Elapsed int // seconds; meaningless when Kind == Stopped
	Total   int // seconds

	Volume  int
	Speed   int
	Gapless bool
	Devices []DeviceStatus
}

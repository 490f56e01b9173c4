package server

import (
	"encoding/base64"

	"github.com/alfazet/musing/internal/broadcast"
	"github.com/alfazet/musing/internal/player"
	"github.com/alfazet/musing/internal/queue"
)

// canonicalState builds the full {queue, current, cover_art,
// playback_state, playback_mode, gapless, volume, speed, timer, playlists,
// devices} tuple of spec.md §4.5.
func (s *Server) canonicalState() broadcast.State {
	snap := s.player.Snapshot()
	entries := s.queue.Entries()

	queueOut := make([]map[string]any, len(entries))
	for i, e := range entries {
		queueOut[i] = map[string]any{"id": e.ID, "path": e.Path}
	}

	var current any
	var coverArt string
	if song, ok := s.catalog.Lookup(currentPath(entries, snap.EntryID)); ok && snap.Kind != player.Stopped {
		current = map[string]any{"id": snap.EntryID, "path": song.Path}
		if len(song.Cover) > 0 {
			coverArt = base64.StdEncoding.EncodeToString(song.Cover)
		}
	}

	var timer any
	if snap.Kind != player.Stopped {
		timer = map[string]any{"duration": snap.Total, "elapsed": snap.Elapsed}
	}

	devicesOut := make([]map[string]any, len(snap.Devices))
	for i, d := range snap.Devices {
		devicesOut[i] = map[string]any{"name": d.Name, "enabled": d.Enabled}
	}

	playlists, _ := s.store.ListPlaylists()

	return broadcast.State{
		"queue":           queueOut,
		"current":         current,
		"cover_art":       coverArt,
		"playback_state":  playbackStateName(snap.Kind),
		"playback_mode":   playbackModeName(s.queue.Mode()),
		"gapless":         snap.Gapless,
		"volume":          snap.Volume,
		"speed":           snap.Speed,
		"timer":           timer,
		"playlists":       playlists,
		"devices":         devicesOut,
	}
}

func currentPath(entries []queue.Entry, id uint64) string {
	for _, e := range entries {
		if e.ID == id {
			return e.Path
		}
	}
	return ""
}

func playbackStateName(k player.Kind) string {
	switch k {
	case player.Playing:
		return "playing"
	case player.Paused:
		return "paused"
	default:
		return "stopped"
	}
}

func playbackModeName(m queue.Mode) string {
	switch m {
	case queue.Single:
		return "single"
	case queue.Random:
		return "random"
	default:
		return "sequential"
	}
}

package model

import "time"

// Song is the catalog's per-file record: path, tags, duration and an
// optional embedded cover image. Owned exclusively by the catalog.
type Song struct {
	Path     string
	ModTime  time.Time
	Duration int // seconds
	Cover    []byte
	Tags     map[Tag]string
}

// TagValue returns the song's value for t and whether it was present.
func (s *Song) TagValue(t Tag) (string, bool) {
	v, ok := s.Tags[t]
	return v, ok
}

// SupportedExts is the set of file extensions scan/update will probe.
var SupportedExts = map[string]struct{}{
	".mp3":  {},
	".aac":  {},
	".flac": {},
	".wav":  {},
	".aif":  {},
	".ogg":  {},
}

package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// openStream is the decoder collaborator seam named in spec.md §1: given a
// path it returns a seekable PCM stream and its format. Picking the codec
// by extension mirrors original_source/src/model/song.rs's probe-by-ext
// dispatch, ported onto gopxl/beep's per-format Decode functions (the
// library GiGurra-tofu's jukebox player uses for the same purpose).
func openStream(path string) (beep.StreamSeekCloser, beep.Format, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, nil, err
	}
	closeFile := func() { f.Close() }

	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".flac":
		streamer, format, err = flac.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	case ".aif", ".aac":
		// beep has no AIFF/AAC decoder; routing these through wav.Decode
		// mislabels the failure, so fail explicitly instead.
		closeFile()
		return nil, beep.Format{}, nil, fmt.Errorf("unsupported extension %q", filepath.Ext(path))
	default:
		closeFile()
		return nil, beep.Format{}, nil, fmt.Errorf("unsupported extension %q", filepath.Ext(path))
	}
	if err != nil {
		closeFile()
		return nil, beep.Format{}, nil, err
	}
	return streamer, format, closeFile, nil
}

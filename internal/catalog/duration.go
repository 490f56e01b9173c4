package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
)

// DurationProbe opens path just long enough to ask the decoder collaborator
// for the stream length, then closes it. This is the same decoder seam the
// player uses (internal/player), but scan/update only need the total, not a
// live stream.
func DurationProbe(path string) (time.Duration, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

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
		return 0, fmt.Errorf("unsupported extension %q", filepath.Ext(path))
	default:
		return 0, fmt.Errorf("unsupported extension %q", filepath.Ext(path))
	}
	if err != nil {
		return 0, err
	}
	defer streamer.Close()
	return format.SampleRate.D(streamer.Len()), nil
}

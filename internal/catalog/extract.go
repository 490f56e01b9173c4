package catalog

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dhowden/tag"

	"github.com/alfazet/musing/internal/model"
)

// extract opens path and builds a Song record from its tags and duration.
// Grounded on other_examples' dhowden/tag usage (ReadFrom + Picture()); the
// teacher's scanner shells out to ffprobe for this instead, but dhowden/tag
// lets extraction happen in-process and gives us cover art directly.
func extract(path string, info os.FileInfo) (*model.Song, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return nil, err
	}

	tags := make(map[model.Tag]string)
	setIfNonEmpty(tags, model.Album, m.Album())
	setIfNonEmpty(tags, model.AlbumArtist, m.AlbumArtist())
	setIfNonEmpty(tags, model.Artist, m.Artist())
	setIfNonEmpty(tags, model.Composer, m.Composer())
	setIfNonEmpty(tags, model.Genre, m.Genre())
	setIfNonEmpty(tags, model.TrackTitle, m.Title())
	if y := m.Year(); y != 0 {
		tags[model.Date] = strconv.Itoa(y)
	}
	if n, total := m.Track(); n != 0 {
		if total != 0 {
			tags[model.TrackNumber] = strconv.Itoa(n) + "/" + strconv.Itoa(total)
		} else {
			tags[model.TrackNumber] = strconv.Itoa(n)
		}
	}
	if n, total := m.Disc(); n != 0 {
		if total != 0 {
			tags[model.DiscNumber] = strconv.Itoa(n) + "/" + strconv.Itoa(total)
		} else {
			tags[model.DiscNumber] = strconv.Itoa(n)
		}
	}

	var cover []byte
	if pic := m.Picture(); pic != nil {
		cover = pic.Data
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &model.Song{
		Path:     abs,
		ModTime:  info.ModTime(),
		Duration: probeDuration(path),
		Cover:    cover,
		Tags:     tags,
	}, nil
}

func setIfNonEmpty(m map[model.Tag]string, t model.Tag, v string) {
	if v != "" {
		m[t] = v
	}
}

// probeDuration asks the decoder collaborator for the track's total length.
// Kept separate from tag extraction because duration is a decoder concern
// (spec.md §1), not a metadata-tag-extractor concern.
func probeDuration(path string) int {
	d, err := DurationProbe(path)
	if err != nil {
		return 0
	}
	return int(d / time.Second)
}

// Package model holds the catalog's wire-facing data types: tags, songs,
// comparators and filters used by select queries.
package model

import "fmt"

// Kind affects how a tag's string value is compared by a Comparator.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindOutOf // "X/Y" formatted values; ordered by the numerator only
)

// Tag is one entry of the closed, 30-name metadata vocabulary.
type Tag string

const (
	Album             Tag = "album"
	AlbumArtist       Tag = "albumartist"
	Arranger          Tag = "arranger"
	Artist            Tag = "artist"
	Bpm               Tag = "bpm"
	Composer          Tag = "composer"
	Conductor         Tag = "conductor"
	Date              Tag = "date"
	DiscNumber        Tag = "discnumber"
	DiscTotal         Tag = "disctotal"
	Ensemble          Tag = "ensemble"
	Genre             Tag = "genre"
	Label             Tag = "label"
	Language          Tag = "language"
	Lyricist          Tag = "lyricist"
	Mood              Tag = "mood"
	MovementName      Tag = "movementname"
	MovementNumber    Tag = "movementnumber"
	Part              Tag = "part"
	PartTotal         Tag = "parttotal"
	Performer         Tag = "performer"
	Producer          Tag = "producer"
	Script            Tag = "script"
	SortAlbum         Tag = "sortalbum"
	SortAlbumArtist   Tag = "sortalbumartist"
	SortArtist        Tag = "sortartist"
	SortComposer      Tag = "sortcomposer"
	SortTrackTitle    Tag = "sorttracktitle"
	TrackNumber       Tag = "tracknumber"
	TrackTitle        Tag = "tracktitle"
)

// kinds maps the tags that are not compared as plain strings to their
// comparator Kind. Every tag not listed below is KindString.
var kinds = map[Tag]Kind{
	Bpm:            KindInteger,
	DiscNumber:     KindOutOf,
	DiscTotal:      KindInteger,
	MovementNumber: KindOutOf,
	PartTotal:      KindInteger,
	TrackNumber:    KindOutOf,
}

// All is the closed set of every supported tag name, in the order listed by
// the protocol documentation.
var All = []Tag{
	Album, AlbumArtist, Arranger, Artist, Bpm, Composer, Conductor, Date,
	DiscNumber, DiscTotal, Ensemble, Genre, Label, Language, Lyricist, Mood,
	MovementName, MovementNumber, Part, PartTotal, Performer, Producer,
	Script, SortAlbum, SortAlbumArtist, SortArtist, SortComposer,
	SortTrackTitle, TrackNumber, TrackTitle,
}

var validSet = func() map[Tag]struct{} {
	m := make(map[Tag]struct{}, len(All))
	for _, t := range All {
		m[t] = struct{}{}
	}
	return m
}()

// Valid reports whether name is one of the 30 supported tags.
func Valid(name string) bool {
	_, ok := validSet[Tag(name)]
	return ok
}

// ParseTag validates name against the closed vocabulary.
func ParseTag(name string) (Tag, error) {
	if !Valid(name) {
		return "", fmt.Errorf("%q", name)
	}
	return Tag(name), nil
}

// KindOf returns the comparator Kind for a tag, defaulting to KindString.
func KindOf(t Tag) Kind {
	if k, ok := kinds[t]; ok {
		return k
	}
	return KindString
}

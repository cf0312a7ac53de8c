// Package track defines the normalized playable record shared by the
// queue, playback and favorites packages.
package track

import (
	"fmt"
	"time"
)

// FallbackDuration is used when the catalog does not report a duration.
// Preview clips are 30 seconds.
const FallbackDuration = 30 * time.Second

// Placeholders substituted for missing display fields.
const (
	UnknownTitle   = "Unknown Title"
	UnknownArtist  = "Unknown Artist"
	PlaceholderArt = "img/placeholder.svg"
)

// Record is an immutable description of a playable item.
type Record struct {
	ID         string
	Title      string
	Artist     string
	AlbumArt   string
	PreviewURL string // empty means not playable
	Duration   time.Duration
}

// Playable reports whether the record carries an audio source.
func (r Record) Playable() bool {
	return r.PreviewURL != ""
}

// Same reports whether two records identify the same track.
// Identity is by ID; when either ID is missing, records match only if
// title and artist both match.
func Same(a, b Record) bool {
	if a.ID != "" && b.ID != "" {
		return a.ID == b.ID
	}
	return a.Title == b.Title && a.Artist == b.Artist
}

// Sanitize returns a copy with display fields filled in and a best-effort
// identifier, so that stored entries remain addressable even when the
// source record was partially malformed.
func Sanitize(r Record) Record {
	if r.ID == "" {
		r.ID = syntheticID(r)
	}
	if r.Title == "" {
		r.Title = UnknownTitle
	}
	if r.Artist == "" {
		r.Artist = UnknownArtist
	}
	if r.AlbumArt == "" {
		r.AlbumArt = PlaceholderArt
	}
	if r.Duration <= 0 {
		r.Duration = FallbackDuration
	}
	return r
}

// syntheticID derives a stable identifier from the display fields.
func syntheticID(r Record) string {
	return fmt.Sprintf("t:%s|a:%s", r.Title, r.Artist)
}

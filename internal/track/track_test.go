package track

import (
	"testing"
	"time"
)

func TestSame_ByID(t *testing.T) {
	a := Record{ID: "1", Title: "One", Artist: "A"}
	b := Record{ID: "1", Title: "Different", Artist: "B"}

	if !Same(a, b) {
		t.Error("Same() = false, want true for matching IDs")
	}
}

func TestSame_DifferentIDs(t *testing.T) {
	a := Record{ID: "1", Title: "One", Artist: "A"}
	b := Record{ID: "2", Title: "One", Artist: "A"}

	if Same(a, b) {
		t.Error("Same() = true, want false for distinct IDs")
	}
}

func TestSame_MissingID_FallsBackToTitleArtist(t *testing.T) {
	a := Record{Title: "One", Artist: "A"}
	b := Record{ID: "7", Title: "One", Artist: "A"}

	if !Same(a, b) {
		t.Error("Same() = false, want true for matching title+artist")
	}

	c := Record{Title: "One", Artist: "B"}
	if Same(a, c) {
		t.Error("Same() = true, want false for different artist")
	}
}

func TestSanitize_FillsMissingFields(t *testing.T) {
	r := Sanitize(Record{})

	if r.ID == "" {
		t.Error("Sanitize() left ID empty")
	}
	if r.Title != UnknownTitle {
		t.Errorf("Title = %q, want %q", r.Title, UnknownTitle)
	}
	if r.Artist != UnknownArtist {
		t.Errorf("Artist = %q, want %q", r.Artist, UnknownArtist)
	}
	if r.AlbumArt != PlaceholderArt {
		t.Errorf("AlbumArt = %q, want %q", r.AlbumArt, PlaceholderArt)
	}
	if r.Duration != FallbackDuration {
		t.Errorf("Duration = %v, want %v", r.Duration, FallbackDuration)
	}
}

func TestSanitize_KeepsExistingFields(t *testing.T) {
	in := Record{
		ID:         "42",
		Title:      "Song",
		Artist:     "Artist",
		AlbumArt:   "http://example.com/cover.jpg",
		PreviewURL: "http://example.com/preview.mp3",
		Duration:   3 * time.Minute,
	}

	if got := Sanitize(in); got != in {
		t.Errorf("Sanitize() = %+v, want unchanged %+v", got, in)
	}
}

func TestSanitize_SyntheticIDIsStable(t *testing.T) {
	a := Sanitize(Record{Title: "One", Artist: "A"})
	b := Sanitize(Record{Title: "One", Artist: "A"})

	if a.ID != b.ID {
		t.Errorf("synthetic IDs differ: %q vs %q", a.ID, b.ID)
	}
}

func TestPlayable(t *testing.T) {
	if (Record{}).Playable() {
		t.Error("Playable() = true for empty preview URL")
	}
	if !(Record{PreviewURL: "http://example.com/p.mp3"}).Playable() {
		t.Error("Playable() = false with preview URL set")
	}
}

package catalog

import (
	"strconv"
	"time"

	"github.com/whitehole-music/whitehole/internal/track"
)

// Kind selects the search index.
type Kind string

const (
	KindTrack    Kind = "track"
	KindAlbum    Kind = "album"
	KindArtist   Kind = "artist"
	KindPlaylist Kind = "playlist"
)

// Artist is a catalog artist.
type Artist struct {
	ID      string
	Name    string
	Picture string
}

// Album is a catalog album.
type Album struct {
	ID     string
	Title  string
	Artist string
	Cover  string
}

// Playlist is a catalog playlist.
type Playlist struct {
	ID         string
	Title      string
	Picture    string
	TrackCount int
}

// Results holds one search response; only the slice matching the
// requested kind is populated.
type Results struct {
	Tracks    []track.Record
	Albums    []Album
	Artists   []Artist
	Playlists []Playlist
}

// Wire types. The Deezer API uses numeric ids and second-granularity
// durations.

type envelope struct {
	Data []rawItem `json:"data"`
}

type rawItem struct {
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Name     string    `json:"name"` // artists use name instead of title
	Duration int       `json:"duration"`
	Preview  string    `json:"preview"`
	Picture  string    `json:"picture_medium"`
	Cover    string    `json:"cover_medium"`
	NbTracks int       `json:"nb_tracks"`
	Artist   *rawOwner `json:"artist"`
	Album    *rawAlbum `json:"album"`
}

type rawOwner struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type rawAlbum struct {
	Title string `json:"title"`
	Cover string `json:"cover_medium"`
}

func (r rawItem) toTrack() track.Record {
	t := track.Record{
		ID:         strconv.FormatInt(r.ID, 10),
		Title:      r.Title,
		PreviewURL: r.Preview,
		Duration:   time.Duration(r.Duration) * time.Second,
	}
	if r.Artist != nil {
		t.Artist = r.Artist.Name
	}
	if r.Album != nil {
		t.AlbumArt = r.Album.Cover
	}
	if t.Duration <= 0 {
		t.Duration = track.FallbackDuration
	}
	return track.Sanitize(t)
}

func (r rawItem) toArtist() Artist {
	return Artist{
		ID:      strconv.FormatInt(r.ID, 10),
		Name:    r.Name,
		Picture: r.Picture,
	}
}

func (r rawItem) toAlbum() Album {
	a := Album{
		ID:    strconv.FormatInt(r.ID, 10),
		Title: r.Title,
		Cover: r.Cover,
	}
	if r.Artist != nil {
		a.Artist = r.Artist.Name
	}
	return a
}

func (r rawItem) toPlaylist() Playlist {
	return Playlist{
		ID:         strconv.FormatInt(r.ID, 10),
		Title:      r.Title,
		Picture:    r.Picture,
		TrackCount: r.NbTracks,
	}
}

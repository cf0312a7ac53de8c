package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whitehole-music/whitehole/internal/config"
	"github.com/whitehole-music/whitehole/internal/logging"
)

const searchBody = `{"data":[
	{"id":3135556,"title":"Harder, Better, Faster, Stronger","duration":224,
	 "preview":"https://cdn.example/3135556.mp3",
	 "artist":{"id":27,"name":"Daft Punk"},
	 "album":{"title":"Discovery","cover_medium":"https://cdn.example/discovery.jpg"}},
	{"id":916424,"title":"One More Time","duration":0,"preview":"",
	 "artist":{"id":27,"name":"Daft Punk"}}
]}`

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.CatalogConfig{PublicBaseURL: srv.URL}, time.Minute, logging.Nop())
}

func TestSearch_Tracks(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "daft punk", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(searchBody))
	}))

	tracks := c.SearchTracks(context.Background(), "daft punk")
	require.Len(t, tracks, 2)

	assert.Equal(t, "3135556", tracks[0].ID)
	assert.Equal(t, "Daft Punk", tracks[0].Artist)
	assert.Equal(t, 224*time.Second, tracks[0].Duration)
	assert.Equal(t, "https://cdn.example/discovery.jpg", tracks[0].AlbumArt)

	// Missing duration falls back, missing art gets the placeholder.
	assert.Equal(t, 30*time.Second, tracks[1].Duration)
	assert.Equal(t, "img/placeholder.svg", tracks[1].AlbumArt)
}

func TestSearch_Artists(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/artist", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":27,"name":"Daft Punk","picture_medium":"https://cdn.example/dp.jpg"}]}`))
	}))

	res := c.Search(context.Background(), KindArtist, "daft")
	require.Len(t, res.Artists, 1)
	assert.Equal(t, "27", res.Artists[0].ID)
	assert.Equal(t, "Daft Punk", res.Artists[0].Name)
	assert.Empty(t, res.Tracks)
}

func TestSearch_EmptyQuery(t *testing.T) {
	called := false
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	res := c.Search(context.Background(), KindTrack, "")
	assert.Empty(t, res.Tracks)
	assert.False(t, called, "empty query must not hit the network")
}

func TestSearch_ServerErrorResolvesToEmpty(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	tracks := c.SearchTracks(context.Background(), "anything")
	assert.Empty(t, tracks)
}

func TestSearch_MalformedJSONResolvesToEmpty(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"data": not json`))
	}))

	tracks := c.SearchTracks(context.Background(), "anything")
	assert.Empty(t, tracks)
	assert.Equal(t, int32(1), calls.Load(), "malformed payloads must not be retried")
}

func TestSearch_RetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(searchBody))
	}))

	tracks := c.SearchTracks(context.Background(), "daft punk")
	assert.Len(t, tracks, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestSearch_CachesResponses(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(searchBody))
	}))

	_ = c.SearchTracks(context.Background(), "daft punk")
	_ = c.SearchTracks(context.Background(), "daft punk")
	assert.Equal(t, int32(1), calls.Load(), "second identical search should come from cache")

	_ = c.SearchTracks(context.Background(), "justice")
	assert.Equal(t, int32(2), calls.Load())
}

func TestArtistTopTracks(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/artist/27/top", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(searchBody))
	}))

	tracks := c.ArtistTopTracks(context.Background(), "27", 5)
	assert.Len(t, tracks, 2)
}

func TestArtistTopTracks_EmptyID(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty artist id must not hit the network")
	}))

	assert.Nil(t, c.ArtistTopTracks(context.Background(), "", 5))
}

func TestRelatedArtists(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/artist/27/related", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"Justice"},{"id":2,"name":"Air"}]}`))
	}))

	artists := c.RelatedArtists(context.Background(), "27")
	require.Len(t, artists, 2)
	assert.Equal(t, "Justice", artists[0].Name)
}

func TestProxyHeaders(t *testing.T) {
	var gotKey, gotHost string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-rapidapi-key")
		gotHost = r.Header.Get("x-rapidapi-host")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	c := New(config.CatalogConfig{
		BaseURL:       srv.URL,
		PublicBaseURL: srv.URL,
		APIKey:        "secret",
		APIHost:       "deezerdevs-deezer.p.rapidapi.com",
	}, time.Minute, logging.Nop())

	_ = c.SearchTracks(context.Background(), "q")
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "deezerdevs-deezer.p.rapidapi.com", gotHost)

	// Artist endpoints stay on the public API without proxy headers.
	gotKey, gotHost = "", ""
	_ = c.ArtistTopTracks(context.Background(), "27", 1)
	assert.Empty(t, gotKey)
	assert.Empty(t, gotHost)
}

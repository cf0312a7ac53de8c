// Package catalog provides a client for the Deezer catalog, reached
// either through a RapidAPI proxy or the public API. Catalog failures
// degrade to empty result sets; the player keeps working offline.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	json "github.com/goccy/go-json"
	"github.com/karlseguin/ccache/v3"
	"github.com/rs/zerolog"

	"github.com/whitehole-music/whitehole/internal/config"
	"github.com/whitehole-music/whitehole/internal/track"
)

const (
	maxRetries      = 3
	maxResponseSize = 4 << 20
	cacheMaxSize    = 512
)

// Client is a Deezer catalog client.
type Client struct {
	httpClient *http.Client
	cfg        config.CatalogConfig
	cacheTTL   time.Duration
	cache      *ccache.Cache[[]rawItem]
	log        zerolog.Logger
}

// New creates a catalog client. ttl bounds how long responses are served
// from cache.
func New(cfg config.CatalogConfig, ttl time.Duration, log zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		cfg:      cfg,
		cacheTTL: ttl,
		cache:    ccache.New(ccache.Configure[[]rawItem]().MaxSize(cacheMaxSize)),
		log:      log,
	}
}

// Search queries the given index. All failures resolve to empty results.
func (c *Client) Search(ctx context.Context, kind Kind, query string) Results {
	if query == "" {
		return Results{}
	}

	path := "/search"
	if kind != KindTrack {
		path = "/search/" + string(kind)
	}
	params := url.Values{}
	params.Set("q", query)

	items := c.fetch(ctx, c.searchURL(path, params), c.proxied())

	var res Results
	switch kind {
	case KindAlbum:
		for _, it := range items {
			res.Albums = append(res.Albums, it.toAlbum())
		}
	case KindArtist:
		for _, it := range items {
			res.Artists = append(res.Artists, it.toArtist())
		}
	case KindPlaylist:
		for _, it := range items {
			res.Playlists = append(res.Playlists, it.toPlaylist())
		}
	default:
		for _, it := range items {
			res.Tracks = append(res.Tracks, it.toTrack())
		}
	}
	return res
}

// SearchTracks is the common track search path.
func (c *Client) SearchTracks(ctx context.Context, query string) []track.Record {
	return c.Search(ctx, KindTrack, query).Tracks
}

// ArtistTopTracks returns an artist's most popular tracks. Artist
// endpoints always use the public API, the proxy does not expose them.
func (c *Client) ArtistTopTracks(ctx context.Context, artistID string, limit int) []track.Record {
	if artistID == "" {
		return nil
	}
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}
	items := c.fetch(ctx, c.publicURL("/artist/"+artistID+"/top", params), false)

	tracks := make([]track.Record, 0, len(items))
	for _, it := range items {
		tracks = append(tracks, it.toTrack())
	}
	return tracks
}

// RelatedArtists returns artists similar to the given one.
func (c *Client) RelatedArtists(ctx context.Context, artistID string) []Artist {
	if artistID == "" {
		return nil
	}
	items := c.fetch(ctx, c.publicURL("/artist/"+artistID+"/related", nil), false)

	artists := make([]Artist, 0, len(items))
	for _, it := range items {
		artists = append(artists, it.toArtist())
	}
	return artists
}

// Trending returns the current track chart.
func (c *Client) Trending(ctx context.Context) []track.Record {
	items := c.fetch(ctx, c.publicURL("/chart/0/tracks", nil), false)

	tracks := make([]track.Record, 0, len(items))
	for _, it := range items {
		tracks = append(tracks, it.toTrack())
	}
	return tracks
}

// NewReleases returns the editorial new-release albums.
func (c *Client) NewReleases(ctx context.Context) []Album {
	items := c.fetch(ctx, c.publicURL("/editorial/0/releases", nil), false)

	albums := make([]Album, 0, len(items))
	for _, it := range items {
		albums = append(albums, it.toAlbum())
	}
	return albums
}

func (c *Client) proxied() bool {
	return c.cfg.HasProxyConfig()
}

func (c *Client) searchURL(path string, params url.Values) string {
	base := c.cfg.PublicBaseURL
	if c.proxied() {
		base = c.cfg.BaseURL
	}
	return base + path + "?" + params.Encode()
}

func (c *Client) publicURL(path string, params url.Values) string {
	u := c.cfg.PublicBaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// fetch GETs the url with bounded retry, serving repeats from cache.
// Any failure logs and returns no items.
func (c *Client) fetch(ctx context.Context, reqURL string, proxied bool) []rawItem {
	if item := c.cache.Get(reqURL); item != nil && !item.Expired() {
		return item.Value()
	}

	var items []rawItem
	op := func() error {
		var err error
		items, err = c.get(ctx, reqURL, proxied)
		return err
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		c.log.Warn().Err(err).Str("url", reqURL).Msg("catalog request failed")
		return nil
	}

	c.cache.Set(reqURL, items, c.cacheTTL)
	return items
}

func (c *Client) get(ctx context.Context, reqURL string, proxied bool) ([]rawItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("create request: %w", err))
	}
	if proxied {
		req.Header.Set("x-rapidapi-key", c.cfg.APIKey)
		req.Header.Set("x-rapidapi-host", c.cfg.APIHost)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, backoff.Permanent(fmt.Errorf("unexpected status: %s", resp.Status))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("decode response: %w", err))
	}
	return env.Data, nil
}

package search

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/whitehole-music/whitehole/internal/catalog"
	"github.com/whitehole-music/whitehole/internal/track"
)

const (
	relatedArtistCount  = 3
	topTracksPerArtist  = 5
	seedArtistTopTracks = 10
	keywordMinLength    = 4
	keywordSearchCount  = 2
)

// Suggestions returns tracks similar to seed: the artist's own top
// tracks, top tracks of a few related artists, and title-keyword
// matches, merged and deduplicated. Results are cached per seed track.
func (s *Searcher) Suggestions(ctx context.Context, seed track.Record) []track.Record {
	seed = track.Sanitize(seed)

	if item := s.suggestions.Get(seed.ID); item != nil && !item.Expired() {
		return item.Value()
	}

	var pool []track.Record

	// Same-artist top tracks. The catalog is track-oriented, so the
	// artist id is resolved through an artist search first.
	if artist := s.resolveArtist(ctx, seed.Artist); artist != nil {
		pool = append(pool, s.catalog.ArtistTopTracks(ctx, artist.ID, seedArtistTopTracks)...)

		related := s.catalog.RelatedArtists(ctx, artist.ID)
		for _, rel := range lo.Slice(related, 0, relatedArtistCount) {
			pool = append(pool, s.catalog.ArtistTopTracks(ctx, rel.ID, topTracksPerArtist)...)
		}
	}

	// Title-keyword searches on the longer words.
	keywords := lo.Filter(strings.Fields(seed.Title), func(w string, _ int) bool {
		return len(w) >= keywordMinLength
	})
	for _, word := range lo.Slice(keywords, 0, keywordSearchCount) {
		pool = append(pool, s.catalog.Search(ctx, catalog.KindTrack, word).Tracks...)
	}

	pool = lo.Filter(pool, func(t track.Record, _ int) bool {
		return !track.Same(t, seed)
	})
	pool = lo.UniqBy(pool, func(t track.Record) string { return t.ID })
	pool = lo.Slice(pool, 0, s.limit)

	s.suggestions.Set(seed.ID, pool, s.ttl)
	return pool
}

func (s *Searcher) resolveArtist(ctx context.Context, name string) *catalog.Artist {
	if name == "" || name == "Unknown Artist" {
		return nil
	}
	artists := s.catalog.Search(ctx, catalog.KindArtist, name).Artists
	if len(artists) == 0 {
		return nil
	}
	return &artists[0]
}

// Package search drives the debounced search flow and the per-track
// suggestion engine.
package search

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/karlseguin/ccache/v3"

	"github.com/whitehole-music/whitehole/internal/catalog"
	"github.com/whitehole-music/whitehole/internal/track"
)

// Catalog is the slice of the catalog client the searcher needs.
type Catalog interface {
	Search(ctx context.Context, kind catalog.Kind, query string) catalog.Results
	ArtistTopTracks(ctx context.Context, artistID string, limit int) []track.Record
	RelatedArtists(ctx context.Context, artistID string) []catalog.Artist
}

// Response is one resolved search. Seq identifies the input that caused
// it; stale responses are dropped before delivery.
type Response struct {
	Seq     uint64
	Query   string
	Results catalog.Results
}

const suggestionCacheSize = 256

// Searcher debounces raw input and guarantees that only the latest
// query's results are ever delivered.
type Searcher struct {
	catalog  Catalog
	debounce time.Duration
	limit    int
	ttl      time.Duration

	seq atomic.Uint64

	timerMu sync.Mutex
	timer   *time.Timer

	suggestions *ccache.Cache[[]track.Record]
}

// New creates a searcher. debounce is the quiet period before a query
// fires, limit caps suggestion counts, ttl bounds the suggestion cache.
func New(c Catalog, debounce time.Duration, limit int, ttl time.Duration) *Searcher {
	return &Searcher{
		catalog:     c,
		debounce:    debounce,
		limit:       limit,
		ttl:         ttl,
		suggestions: ccache.New(ccache.Configure[[]track.Record]().MaxSize(suggestionCacheSize)),
	}
}

// Input schedules a search for query after the quiet period. A newer
// Input replaces the pending one. deliver runs on a background goroutine
// and is skipped when the response is no longer the latest.
func (s *Searcher) Input(ctx context.Context, kind catalog.Kind, query string, deliver func(Response)) {
	seq := s.seq.Add(1)

	s.timerMu.Lock()
	defer s.timerMu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, func() {
		s.resolve(ctx, seq, kind, query, deliver)
	})
}

// Now runs the search immediately, bypassing the debounce. Used for
// explicit submits (enter key).
func (s *Searcher) Now(ctx context.Context, kind catalog.Kind, query string, deliver func(Response)) {
	seq := s.seq.Add(1)

	s.timerMu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.timerMu.Unlock()

	go s.resolve(ctx, seq, kind, query, deliver)
}

func (s *Searcher) resolve(ctx context.Context, seq uint64, kind catalog.Kind, query string, deliver func(Response)) {
	if s.seq.Load() != seq {
		return
	}
	results := s.catalog.Search(ctx, kind, query)

	// Check again: a newer input may have arrived while we were fetching.
	if s.seq.Load() != seq {
		return
	}
	deliver(Response{Seq: seq, Query: query, Results: results})
}

// Invalidate drops any pending or in-flight search. Leaving the search
// view must not surface a late response.
func (s *Searcher) Invalidate() {
	s.seq.Add(1)

	s.timerMu.Lock()
	defer s.timerMu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

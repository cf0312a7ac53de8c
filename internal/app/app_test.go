package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/whitehole-music/whitehole/internal/catalog"
	"github.com/whitehole-music/whitehole/internal/favorites"
	"github.com/whitehole-music/whitehole/internal/logging"
	"github.com/whitehole-music/whitehole/internal/notify"
	"github.com/whitehole-music/whitehole/internal/playback"
	"github.com/whitehole-music/whitehole/internal/player"
	"github.com/whitehole-music/whitehole/internal/queue"
	"github.com/whitehole-music/whitehole/internal/recent"
	"github.com/whitehole-music/whitehole/internal/search"
	"github.com/whitehole-music/whitehole/internal/state"
	"github.com/whitehole-music/whitehole/internal/track"
)

type stubCatalog struct {
	tracks []track.Record
}

func (s *stubCatalog) Search(ctx context.Context, kind catalog.Kind, query string) catalog.Results {
	return catalog.Results{Tracks: s.tracks}
}

func (s *stubCatalog) ArtistTopTracks(ctx context.Context, artistID string, limit int) []track.Record {
	return nil
}

func (s *stubCatalog) RelatedArtists(ctx context.Context, artistID string) []catalog.Artist {
	return nil
}

func (s *stubCatalog) Trending(ctx context.Context) []track.Record { return s.tracks }

func (s *stubCatalog) NewReleases(ctx context.Context) []catalog.Album { return nil }

func newTestModel(t *testing.T) (*Model, *player.Mock) {
	t.Helper()
	mock := player.NewMock()
	q := queue.New()
	svc := playback.New(mock, q, nil, 0)
	t.Cleanup(func() { _ = svc.Close() })

	cat := &stubCatalog{tracks: []track.Record{
		{ID: "1", Title: "One", Artist: "A", PreviewURL: "http://x/1.mp3"},
		{ID: "2", Title: "Two", Artist: "B", PreviewURL: "http://x/2.mp3"},
	}}

	m := New(Deps{
		Service:  svc,
		Searcher: search.New(cat, time.Millisecond, 12, time.Minute),
		Catalog:  cat,
		Store:    state.NewDiscard(),
		Favs:     favorites.New(),
		Recent:   recent.New(),
		Notifier: notify.NewLog(logging.Nop()),
		Log:      logging.Nop(),
	})
	m.results = cat.tracks
	m.input.Blur()
	return m, mock
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestAddSelectionToQueue(t *testing.T) {
	m, _ := newTestModel(t)

	_, _ = m.Update(key("a"))
	if got := m.svc.QueueLen(); got != 1 {
		t.Fatalf("QueueLen() = %d, want 1", got)
	}
	if got := m.svc.QueueTracks()[0].ID; got != "1" {
		t.Errorf("queued track = %q, want 1", got)
	}
}

func TestPlaySelectionEnqueues(t *testing.T) {
	m, mock := newTestModel(t)
	m.cursor = 1

	_, _ = m.Update(key("enter"))
	if got := m.svc.QueueLen(); got != 1 {
		t.Fatalf("QueueLen() = %d, want 1", got)
	}
	if calls := mock.PlayCalls(); len(calls) != 1 || calls[0] != "http://x/2.mp3" {
		t.Errorf("PlayCalls() = %v, want track 2", calls)
	}
}

func TestQueueViewPlaysByPosition(t *testing.T) {
	m, mock := newTestModel(t)
	_ = m.svc.AddToQueue(m.results[0])
	_ = m.svc.AddToQueue(m.results[1])

	m.setView(ViewQueue)
	m.queueTracks = m.svc.QueueTracks()
	m.cursor = 1
	_, _ = m.Update(key("enter"))

	if calls := mock.PlayCalls(); len(calls) != 1 || calls[0] != "http://x/2.mp3" {
		t.Errorf("PlayCalls() = %v, want queue position 1", calls)
	}
}

func TestCursorNavigation(t *testing.T) {
	m, _ := newTestModel(t)

	_, _ = m.Update(key("j"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d after j, want 1", m.cursor)
	}
	_, _ = m.Update(key("j"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, must not pass the end", m.cursor)
	}
	_, _ = m.Update(key("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d after k, want 0", m.cursor)
	}
	_, _ = m.Update(key("G"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d after G, want 1", m.cursor)
	}
	_, _ = m.Update(key("g"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d after g, want 0", m.cursor)
	}
}

func TestToggleFavoriteKey(t *testing.T) {
	m, _ := newTestModel(t)

	_, _ = m.Update(key("f"))
	if !m.favs.IsFavorite(m.results[0]) {
		t.Error("selection not favorited")
	}
	_, _ = m.Update(key("f"))
	if m.favs.IsFavorite(m.results[0]) {
		t.Error("second press must unfavorite")
	}
}

func TestViewSwitching(t *testing.T) {
	m, _ := newTestModel(t)
	m.cursor = 1

	_, _ = m.Update(key("2"))
	if m.view != ViewQueue {
		t.Errorf("view = %v, want ViewQueue", m.view)
	}
	if m.cursor != 0 {
		t.Errorf("cursor = %d after view switch, want 0", m.cursor)
	}

	_, _ = m.Update(key("3"))
	if m.view != ViewFavorites {
		t.Errorf("view = %v, want ViewFavorites", m.view)
	}
}

func TestTrackChangeRecordsRecent(t *testing.T) {
	m, _ := newTestModel(t)

	_, _ = m.Update(trackChangedMsg(playback.TrackChange{
		Current: m.results[0],
		Index:   0,
	}))

	if got := m.recent.Len(); got != 1 {
		t.Fatalf("recent.Len() = %d, want 1", got)
	}
	if m.current == nil || m.current.ID != "1" {
		t.Errorf("current = %v, want track 1", m.current)
	}
}

func TestQueueChangeClampsCursor(t *testing.T) {
	m, _ := newTestModel(t)
	m.setView(ViewQueue)
	m.queueTracks = m.results
	m.cursor = 1

	_, _ = m.Update(queueChangedMsg(playback.QueueChange{
		Tracks: m.results[:1],
		Index:  0,
	}))

	if m.cursor != 0 {
		t.Errorf("cursor = %d after shrink, want 0", m.cursor)
	}
}

func TestNoticeMirrored(t *testing.T) {
	m, _ := newTestModel(t)

	_, _ = m.Update(noticeMsg(playback.Notice{Message: "Queue restarted", Severity: notify.Info}))
	if m.notice != "Queue restarted" {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestSearchResultsIgnoredOutsideSearchView(t *testing.T) {
	m, _ := newTestModel(t)
	m.setView(ViewQueue)

	_, _ = m.Update(searchResultsMsg(search.Response{
		Query:   "x",
		Results: catalog.Results{Tracks: []track.Record{{ID: "9", Title: "Nine", Artist: "Z"}}},
	}))

	if len(m.results) != 2 {
		t.Errorf("results mutated while not in search view")
	}
}

func TestRestoreSession(t *testing.T) {
	mock := player.NewMock()
	svc := playback.New(mock, queue.New(), nil, 0)
	defer svc.Close()

	store, err := state.OpenPath(":memory:")
	if err != nil {
		t.Fatalf("OpenPath(:memory:) = %v", err)
	}
	defer store.Close()

	tracks := []track.Record{
		{ID: "1", Title: "One", Artist: "A", PreviewURL: "http://x/1.mp3"},
		{ID: "2", Title: "Two", Artist: "B", PreviewURL: "http://x/2.mp3"},
	}
	if err := store.SaveQueue(state.QueueState{CurrentIndex: 1, RepeatMode: 1, Tracks: tracks}); err != nil {
		t.Fatalf("SaveQueue() = %v", err)
	}
	if err := store.SaveVolume(0.3, true); err != nil {
		t.Fatalf("SaveVolume() = %v", err)
	}

	favs := favorites.New()
	hist := recent.New()
	RestoreSession(Deps{
		Service: svc,
		Store:   store,
		Favs:    favs,
		Recent:  hist,
		Log:     logging.Nop(),
	})

	if got := svc.QueueLen(); got != 2 {
		t.Errorf("QueueLen() = %d, want 2", got)
	}
	if got := svc.QueueIndex(); got != 1 {
		t.Errorf("QueueIndex() = %d, want 1", got)
	}
	if got := svc.Repeat(); got != queue.RepeatQueue {
		t.Errorf("Repeat() = %v, want RepeatQueue", got)
	}
	if got := svc.Volume(); got != 0.3 {
		t.Errorf("Volume() = %v, want 0.3", got)
	}
	if !svc.Muted() {
		t.Error("Muted() = false, want true")
	}
	if mock.State() != player.Stopped {
		t.Error("restore must not start playback")
	}
}

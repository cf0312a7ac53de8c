// Package app is the terminal UI. It renders session state and maps
// keys onto playback operations; all mutation goes through the playback
// service, never the queue directly.
package app

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/whitehole-music/whitehole/internal/catalog"
	"github.com/whitehole-music/whitehole/internal/favorites"
	"github.com/whitehole-music/whitehole/internal/keymap"
	"github.com/whitehole-music/whitehole/internal/notify"
	"github.com/whitehole-music/whitehole/internal/playback"
	"github.com/whitehole-music/whitehole/internal/player"
	"github.com/whitehole-music/whitehole/internal/queue"
	"github.com/whitehole-music/whitehole/internal/recent"
	"github.com/whitehole-music/whitehole/internal/search"
	"github.com/whitehole-music/whitehole/internal/state"
	"github.com/whitehole-music/whitehole/internal/stderr"
	"github.com/whitehole-music/whitehole/internal/track"
)

// View identifies the active panel.
type View int

const (
	ViewSearch View = iota
	ViewQueue
	ViewFavorites
	ViewRecent
	ViewDiscover
	ViewSuggestions
)

// Catalog is the slice of the catalog client the UI uses directly.
type Catalog interface {
	search.Catalog
	Trending(ctx context.Context) []track.Record
	NewReleases(ctx context.Context) []catalog.Album
}

// Deps carries everything the model needs. All fields are required
// except Notifier, which falls back to a no-op.
type Deps struct {
	Service  playback.Service
	Searcher *search.Searcher
	Catalog  Catalog
	Store    state.Interface
	Favs     *favorites.Ledger
	Recent   *recent.History
	Notifier notify.Notifier
	Log      zerolog.Logger
}

type Model struct {
	svc      playback.Service
	searcher *search.Searcher
	catalog  Catalog
	store    state.Interface
	favs     *favorites.Ledger
	recent   *recent.History
	notifier notify.Notifier
	log      zerolog.Logger
	keys     *keymap.Resolver

	ctx       context.Context
	sub       *playback.Subscription
	searchCh  chan search.Response
	input     textinput.Model
	view      View
	cursor    int
	results   []track.Record
	discover  []track.Record
	suggested []track.Record
	seed      *track.Record

	// Mirrors of session state, updated from events only.
	current     *track.Record
	playState   player.State
	volume      float64
	muted       bool
	shuffleOn   bool
	repeatMode  queue.RepeatMode
	queueTracks []track.Record
	queueIndex  int

	notice    string
	noticeSev notify.Severity
	width     int
	height    int
	showHelp  bool
	quitting  bool
}

func New(deps Deps) *Model {
	input := textinput.New()
	input.Placeholder = "Search tracks..."
	input.CharLimit = 120
	input.Focus()

	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.NewLog(deps.Log)
	}

	m := &Model{
		svc:        deps.Service,
		searcher:   deps.Searcher,
		catalog:    deps.Catalog,
		store:      deps.Store,
		favs:       deps.Favs,
		recent:     deps.Recent,
		notifier:   notifier,
		log:        deps.Log,
		keys:       keymap.NewResolver(keymap.All),
		ctx:        context.Background(),
		sub:        deps.Service.Subscribe(),
		searchCh:   make(chan search.Response, 4),
		input:      input,
		queueIndex: -1,
		volume:     deps.Service.Volume(),
		muted:      deps.Service.Muted(),
		shuffleOn:  deps.Service.Shuffle(),
		repeatMode: deps.Service.Repeat(),
	}
	m.queueTracks = deps.Service.QueueTracks()
	m.queueIndex = deps.Service.QueueIndex()
	m.current = deps.Service.CurrentTrack()
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.waitEvent(),
		m.waitSearch(),
		watchStderr(),
	)
}

// watchStderr pumps captured audio-backend stderr lines so they end up
// in the log instead of the terminal.
func watchStderr() tea.Cmd {
	return func() tea.Msg {
		line, ok := <-stderr.Messages
		if !ok {
			return nil
		}
		return stderrMsg{Line: line}
	}
}

// waitEvent pumps one playback event into the update loop. Re-issued
// after every received message.
func (m *Model) waitEvent() tea.Cmd {
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return stateChangedMsg(e)
		case e := <-sub.TrackChanged:
			return trackChangedMsg(e)
		case e := <-sub.QueueChanged:
			return queueChangedMsg(e)
		case e := <-sub.ModeChanged:
			return modeChangedMsg(e)
		case e := <-sub.VolumeChanged:
			return volumeChangedMsg(e)
		case e := <-sub.Notices:
			return noticeMsg(e)
		case e := <-sub.Errors:
			return playbackErrorMsg(e)
		case <-sub.Done:
			return subscriptionClosedMsg{}
		}
	}
}

// waitSearch pumps resolved searches delivered by the searcher.
func (m *Model) waitSearch() tea.Cmd {
	ch := m.searchCh
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return searchResultsMsg(r)
	}
}

// deliverSearch hands a response to the update loop without blocking
// the searcher's goroutine.
func (m *Model) deliverSearch(r search.Response) {
	select {
	case m.searchCh <- r:
	default:
	}
}

// visibleTracks returns the track list for the active view.
func (m *Model) visibleTracks() []track.Record {
	switch m.view {
	case ViewQueue:
		return m.queueTracks
	case ViewFavorites:
		entries := make([]track.Record, 0, m.favs.Len())
		for e := range m.favs.All() {
			entries = append(entries, e.Track)
		}
		return entries
	case ViewRecent:
		entries := m.recent.Entries()
		tracks := make([]track.Record, len(entries))
		for i, e := range entries {
			tracks[i] = e.Track
		}
		return tracks
	case ViewDiscover:
		return m.discover
	case ViewSuggestions:
		return m.suggested
	default:
		return m.results
	}
}

func (m *Model) selectedTrack() *track.Record {
	tracks := m.visibleTracks()
	if m.cursor < 0 || m.cursor >= len(tracks) {
		return nil
	}
	t := tracks[m.cursor]
	return &t
}

func (m *Model) clampCursor() {
	n := len(m.visibleTracks())
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) setView(v View) {
	if m.view != v {
		m.view = v
		m.cursor = 0
	}
	if v != ViewSearch {
		m.input.Blur()
		m.searcher.Invalidate()
	}
}

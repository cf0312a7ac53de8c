package app

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/whitehole-music/whitehole/internal/catalog"
	"github.com/whitehole-music/whitehole/internal/errmsg"
	"github.com/whitehole-music/whitehole/internal/keymap"
	"github.com/whitehole-music/whitehole/internal/notify"
	"github.com/whitehole-music/whitehole/internal/player"
	"github.com/whitehole-music/whitehole/internal/track"
)

const sleepTimerDuration = 15 * time.Minute

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateChangedMsg:
		m.playState = msg.Current
		var cmd tea.Cmd
		if msg.Current == player.Playing {
			cmd = tickCmd()
		}
		return m, tea.Batch(m.waitEvent(), cmd)

	case trackChangedMsg:
		t := msg.Current
		m.current = &t
		m.queueIndex = msg.Index
		m.recent.Record(t)
		m.persistRecent()
		m.persistQueue()
		return m, tea.Batch(m.waitEvent(), tickCmd())

	case queueChangedMsg:
		m.queueTracks = msg.Tracks
		m.queueIndex = msg.Index
		m.clampCursor()
		m.persistQueue()
		return m, m.waitEvent()

	case modeChangedMsg:
		m.repeatMode = msg.Repeat
		m.shuffleOn = msg.Shuffle
		return m, m.waitEvent()

	case volumeChangedMsg:
		m.volume = msg.Level
		m.muted = msg.Muted
		return m, m.waitEvent()

	case noticeMsg:
		m.notice = msg.Message
		m.noticeSev = msg.Severity
		m.notifier.Notify(msg.Message, msg.Severity)
		return m, m.waitEvent()

	case playbackErrorMsg:
		m.log.Error().Err(msg.Err).Str("operation", msg.Operation).Msg("playback error")
		return m, m.waitEvent()

	case stderrMsg:
		m.log.Warn().Str("source", "audio").Msg(msg.Line)
		return m, watchStderr()

	case subscriptionClosedMsg:
		return m, nil

	case searchResultsMsg:
		if m.view == ViewSearch {
			m.results = msg.Results.Tracks
			m.clampCursor()
		}
		return m, m.waitSearch()

	case suggestionsMsg:
		m.suggested = msg.tracks
		m.seed = &msg.seed
		m.setView(ViewSuggestions)
		return m, nil

	case discoverMsg:
		m.discover = msg.tracks
		m.clampCursor()
		return m, nil

	case tickMsg:
		if m.playState == player.Playing {
			return m, tickCmd()
		}
		return m, nil
	}

	return m, nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The search input swallows printable keys while focused.
	if m.view == ViewSearch && m.input.Focused() {
		switch msg.String() {
		case "ctrl+c":
			return m.quit()
		case "esc":
			m.input.Blur()
			m.searcher.Invalidate()
			return m, nil
		case "enter":
			m.searcher.Now(m.ctx, catalog.KindTrack, m.input.Value(), m.deliverSearch)
			m.input.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			m.searcher.Input(m.ctx, catalog.KindTrack, m.input.Value(), m.deliverSearch)
			return m, cmd
		}
	}

	switch m.keys.Resolve(msg.String()) {
	case keymap.ActionQuit:
		return m.quit()
	case keymap.ActionHelp:
		m.showHelp = !m.showHelp
	case keymap.ActionSearch:
		m.setView(ViewSearch)
		m.input.Focus()
		return m, textinput.Blink

	case keymap.ActionViewSearch:
		m.setView(ViewSearch)
	case keymap.ActionViewQueue:
		m.setView(ViewQueue)
	case keymap.ActionViewFavorites:
		m.setView(ViewFavorites)
	case keymap.ActionViewRecent:
		m.setView(ViewRecent)
	case keymap.ActionViewDiscover:
		m.setView(ViewDiscover)
		if len(m.discover) == 0 {
			return m, m.loadDiscoverCmd()
		}

	case keymap.ActionPlayPause:
		m.svc.Toggle()
	case keymap.ActionStop:
		m.svc.Stop()
	case keymap.ActionNextTrack:
		_ = m.svc.Next()
	case keymap.ActionPrevTrack:
		_ = m.svc.Previous()
	case keymap.ActionVolumeUp:
		m.svc.VolumeUp()
	case keymap.ActionVolumeDown:
		m.svc.VolumeDown()
	case keymap.ActionToggleMute:
		m.svc.ToggleMute()
	case keymap.ActionCycleRepeat:
		m.svc.CycleRepeat()
	case keymap.ActionToggleShuffle:
		m.svc.ToggleShuffle()
	case keymap.ActionSleepTimer:
		m.svc.SetSleepTimer(sleepTimerDuration)
	case keymap.ActionCancelSleep:
		m.svc.CancelSleepTimer()

	case keymap.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case keymap.ActionMoveDown:
		if m.cursor < len(m.visibleTracks())-1 {
			m.cursor++
		}
	case keymap.ActionJumpStart:
		m.cursor = 0
	case keymap.ActionJumpEnd:
		if n := len(m.visibleTracks()); n > 0 {
			m.cursor = n - 1
		}

	case keymap.ActionSelect:
		return m, m.playSelection()
	case keymap.ActionAdd:
		if t := m.selectedTrack(); t != nil {
			_ = m.svc.AddToQueue(*t)
		}
	case keymap.ActionSuggestions:
		if t := m.selectedTrack(); t != nil {
			return m, m.suggestionsCmd(*t)
		}
	case keymap.ActionToggleFavorite:
		m.toggleFavorite()

	case keymap.ActionDelete:
		if m.view == ViewQueue {
			_ = m.svc.RemoveFromQueue(m.cursor)
		}
	case keymap.ActionClear:
		if m.view == ViewQueue {
			m.svc.ClearQueue()
		}
	case keymap.ActionMoveItemUp:
		if m.view == ViewQueue && m.cursor > 0 {
			if err := m.svc.MoveInQueue(m.cursor, m.cursor-1); err == nil {
				m.cursor--
			}
		}
	case keymap.ActionMoveItemDown:
		if m.view == ViewQueue && m.cursor < len(m.queueTracks)-1 {
			if err := m.svc.MoveInQueue(m.cursor, m.cursor+1); err == nil {
				m.cursor++
			}
		}
	}

	return m, nil
}

// playSelection plays the cursor track. In the queue view this selects
// by position; elsewhere the track is enqueued if needed.
func (m *Model) playSelection() tea.Cmd {
	if m.view == ViewQueue {
		_ = m.svc.PlayAt(m.cursor)
		return nil
	}
	if t := m.selectedTrack(); t != nil {
		_ = m.svc.PlayTrack(*t)
	}
	return nil
}

// toggleFavorite acts on the selection, falling back to the playing
// track when the list is empty.
func (m *Model) toggleFavorite() {
	t := m.selectedTrack()
	if t == nil {
		t = m.current
	}
	if t == nil {
		return
	}
	on, err := m.favs.Toggle(*t)
	if err != nil {
		m.notifier.Notify(errmsg.Format(errmsg.OpFavoriteToggle, err), notify.Error)
		return
	}
	if on {
		m.notifier.Notify("Added "+t.Title+" to favorites", notify.Success)
	} else {
		m.notifier.Notify("Removed "+t.Title+" from favorites", notify.Info)
	}
	m.clampCursor()
	m.persistFavorites()
}

func (m *Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.persistQueue()
	m.persistFavorites()
	m.persistRecent()
	_ = m.svc.Close()
	return m, tea.Quit
}

// loadDiscoverCmd fetches the trending feed off the update loop.
func (m *Model) loadDiscoverCmd() tea.Cmd {
	return func() tea.Msg {
		return discoverMsg{
			tracks: m.catalog.Trending(m.ctx),
			albums: m.catalog.NewReleases(m.ctx),
		}
	}
}

func (m *Model) suggestionsCmd(seed track.Record) tea.Cmd {
	return func() tea.Msg {
		return suggestionsMsg{
			seed:   seed,
			tracks: m.searcher.Suggestions(m.ctx, seed),
		}
	}
}

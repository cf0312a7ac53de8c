package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/whitehole-music/whitehole/internal/icons"
	"github.com/whitehole-music/whitehole/internal/keymap"
	"github.com/whitehole-music/whitehole/internal/notify"
	"github.com/whitehole-music/whitehole/internal/player"
	"github.com/whitehole-music/whitehole/internal/ui/playerbar"
	"github.com/whitehole-music/whitehole/internal/ui/styles"
)

var tabNames = []string{"Search", "Queue", "Favorites", "Recent", "Discover", "Suggestions"}

func noticeStyle(sev notify.Severity) lipgloss.Style {
	s := styles.T().S()
	switch sev {
	case notify.Success:
		return s.Success
	case notify.Warning:
		return s.Warning
	case notify.Error:
		return s.Error
	default:
		return s.Muted
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	if m.view == ViewSearch {
		b.WriteString(styles.PanelStyle(m.input.Focused()).Padding(0, 1).Render(m.input.View()))
		b.WriteString("\n")
	}
	if m.view == ViewSuggestions && m.seed != nil {
		b.WriteString(styles.T().S().Muted.Render("Because you played "+m.seed.Title) + "\n")
	}

	if m.showHelp {
		b.WriteString(m.renderHelp())
	} else {
		b.WriteString(m.renderList())
	}

	if m.notice != "" {
		b.WriteString(noticeStyle(m.noticeSev).Render(m.notice) + "\n")
	}

	b.WriteString(m.renderPlayerBar())
	return b.String()
}

func (m *Model) renderTabs() string {
	s := styles.T().S()
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		if View(i) == m.view {
			parts[i] = s.Playing.Padding(0, 1).Render(name)
		} else {
			parts[i] = s.Muted.Padding(0, 1).Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) listHeight() int {
	// Tabs, optional input line, notice line and the player bar all eat
	// rows; keep the list from pushing the bar off screen.
	h := m.height - 4 - playerbar.Height()
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) renderList() string {
	s := styles.T().S()
	tracks := m.visibleTracks()
	if len(tracks) == 0 {
		return s.Muted.Render(m.emptyText()) + "\n"
	}

	height := m.listHeight()
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(tracks) {
		end = len(tracks)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		t := tracks[i]
		line := fmt.Sprintf("%s — %s", t.Title, t.Artist)

		var marks []string
		if m.view == ViewQueue && i == m.queueIndex {
			marks = append(marks, icons.Play())
		}
		if m.favs.IsFavorite(t) {
			marks = append(marks, s.Favorite.Render(icons.Favorite()))
		}
		if len(marks) > 0 {
			line += " " + strings.Join(marks, " ")
		}
		if m.view == ViewFavorites {
			if e, ok := m.favoriteEntry(i); ok {
				line += s.Subtle.Render("  favorited " + humanize.Time(e))
			}
		}

		switch {
		case i == m.cursor:
			line = s.Cursor.Render("> " + line)
		case m.view == ViewQueue && i == m.queueIndex:
			line = s.Playing.Render("  " + line)
		default:
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (m *Model) favoriteEntry(index int) (time.Time, bool) {
	i := 0
	for e := range m.favs.All() {
		if i == index {
			return e.FavoritedAt, true
		}
		i++
	}
	return time.Time{}, false
}

func (m *Model) emptyText() string {
	switch m.view {
	case ViewQueue:
		return "Queue is empty. Add tracks with 'a'."
	case ViewFavorites:
		return "No favorites yet. Press 'f' on a track."
	case ViewRecent:
		return "Nothing played yet."
	case ViewDiscover:
		return "Loading trending tracks..."
	case ViewSuggestions:
		return "No suggestions for this track."
	default:
		return "Type to search."
	}
}

func (m *Model) renderHelp() string {
	var b strings.Builder
	for _, context := range []string{"global", "playback", "list", "queue"} {
		b.WriteString(styles.T().S().Title.Render(strings.ToUpper(context)) + "\n")
		for _, binding := range keymap.ByContext(context) {
			b.WriteString(fmt.Sprintf("  %-14s %s\n", strings.Join(binding.Keys, ", "), binding.Description))
		}
	}
	return b.String()
}

func (m *Model) renderPlayerBar() string {
	if m.current == nil {
		return ""
	}

	return playerbar.Render(playerbar.State{
		Playing:  m.playState == player.Playing,
		Paused:   m.playState == player.Paused,
		Title:    m.current.Title,
		Artist:   m.current.Artist,
		Position: m.svc.Position(),
		Duration: m.svc.Duration(),
		Volume:   m.volume,
		Muted:    m.muted,
		Shuffle:  m.shuffleOn,
		Repeat:   m.repeatMode,
	}, m.width)
}

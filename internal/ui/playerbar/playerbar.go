// Package playerbar renders the single-line playback status bar shown
// at the bottom of the screen.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/whitehole-music/whitehole/internal/icons"
	"github.com/whitehole-music/whitehole/internal/queue"
)

var (
	filledBlock = "▓"
	emptyBlock  = "░"
)

// State holds everything needed to render the player bar.
type State struct {
	Playing  bool
	Paused   bool
	Title    string
	Artist   string
	Position time.Duration
	Duration time.Duration
	Volume   float64
	Muted    bool
	Shuffle  bool
	Repeat   queue.RepeatMode
}

// Height returns the total height of the player bar including borders.
func Height() int {
	return 3 // top border + content + bottom border
}

// Render returns the player bar string for the given width.
// Returns an empty string when there is nothing to show.
func Render(s State, width int) string {
	if s.Title == "" && s.Artist == "" {
		return ""
	}

	innerWidth := max(width-6, 0)

	status := icons.Play()
	switch {
	case s.Paused:
		status = icons.Pause()
	case !s.Playing:
		status = icons.Stop()
	}

	title := s.Title
	if title == "" {
		title = "Unknown Title"
	}
	artist := s.Artist
	if artist == "" {
		artist = "Unknown Artist"
	}

	modes := renderModes(s)
	volume := RenderVolumeCompact(s.Volume, s.Muted)
	timeStr := fmt.Sprintf("%s / %s", formatDuration(s.Position), formatDuration(s.Duration))

	separator := "   "
	sepWidth := lipgloss.Width(separator)
	statusWidth := lipgloss.Width(status + "  ")
	timeWidth := lipgloss.Width(timeStr)
	volumeWidth := lipgloss.Width(volume)
	titleWidth := lipgloss.Width(title)
	artistWidth := lipgloss.Width(artist)

	modesSpace := 0
	if modes != "" {
		modesSpace = lipgloss.Width(modes) + sepWidth
	}

	// Reserve minimum space for the progress bar.
	minBarWidth := 10
	availableForContent := innerWidth - statusWidth - timeWidth - volumeWidth - sepWidth*3 - minBarWidth - modesSpace

	var styledTitle, styledArtist string
	var usedContentWidth int
	switch {
	case titleWidth+sepWidth+artistWidth <= availableForContent:
		styledTitle = titleStyle().Render(title)
		styledArtist = artistStyle().Render(artist)
		usedContentWidth = titleWidth + sepWidth + artistWidth
	case titleWidth+sepWidth <= availableForContent:
		maxArtist := availableForContent - titleWidth - sepWidth
		styledTitle = titleStyle().Render(title)
		styledArtist = artistStyle().Render(truncate(artist, maxArtist))
		usedContentWidth = titleWidth + sepWidth + maxArtist
	default:
		maxTitle := max(availableForContent, 10)
		styledTitle = titleStyle().Render(truncate(title, maxTitle))
		usedContentWidth = min(titleWidth, maxTitle)
	}

	barWidth := max(innerWidth-usedContentWidth-modesSpace-statusWidth-timeWidth-volumeWidth-sepWidth*3, 5)

	var ratio float64
	if s.Duration > 0 {
		ratio = float64(s.Position) / float64(s.Duration)
	}
	filled := min(int(float64(barWidth)*ratio), barWidth)
	bar := progressFilledStyle().Render(strings.Repeat(filledBlock, filled)) +
		progressEmptyStyle().Render(strings.Repeat(emptyBlock, barWidth-filled))

	// Title   Artist   ⇄ ⟳   ▶ ▓▓▓░░░   1:23 / 3:58   🔊 50%
	var content strings.Builder
	content.WriteString(styledTitle)
	if styledArtist != "" {
		content.WriteString(separator)
		content.WriteString(styledArtist)
	}
	if modes != "" {
		content.WriteString(separator)
		content.WriteString(metaStyle().Render(modes))
	}
	content.WriteString(separator)
	content.WriteString(status)
	content.WriteString("  ")
	content.WriteString(bar)
	content.WriteString(separator)
	content.WriteString(timeStyle().Render(timeStr))
	content.WriteString(separator)
	content.WriteString(volume)

	return barStyle().Padding(0, 2).Width(width - 2).Render(content.String())
}

func renderModes(s State) string {
	var parts []string
	if s.Shuffle {
		parts = append(parts, icons.Shuffle())
	}
	switch s.Repeat {
	case queue.RepeatQueue:
		parts = append(parts, icons.RepeatAll())
	case queue.RepeatTrack:
		parts = append(parts, icons.RepeatOne())
	}
	return strings.Join(parts, " ")
}

func truncate(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	for lipgloss.Width(s) > maxWidth-1 && s != "" {
		s = s[:len(s)-1]
	}
	return s + "…"
}

func formatDuration(d time.Duration) string {
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

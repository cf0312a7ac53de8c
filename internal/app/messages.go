package app

import (
	"time"

	"github.com/whitehole-music/whitehole/internal/catalog"
	"github.com/whitehole-music/whitehole/internal/playback"
	"github.com/whitehole-music/whitehole/internal/search"
	"github.com/whitehole-music/whitehole/internal/track"
)

// Messages produced by the playback event subscription. Each wraps one
// event so Update can switch on the concrete type.

type stateChangedMsg playback.StateChange

type trackChangedMsg playback.TrackChange

type queueChangedMsg playback.QueueChange

type modeChangedMsg playback.ModeChange

type volumeChangedMsg playback.VolumeChange

type noticeMsg playback.Notice

type playbackErrorMsg playback.ErrorEvent

// subscriptionClosedMsg ends the event pump.
type subscriptionClosedMsg struct{}

// searchResultsMsg carries a resolved search into the model.
type searchResultsMsg search.Response

// suggestionsMsg carries resolved suggestions for a seed track.
type suggestionsMsg struct {
	seed   track.Record
	tracks []track.Record
}

// discoverMsg carries the trending feed.
type discoverMsg struct {
	tracks []track.Record
	albums []catalog.Album
}

// tickMsg drives the progress bar while playing.
type tickMsg time.Time

// stderrMsg carries a captured stderr line from the audio backend.
type stderrMsg struct {
	Line string
}

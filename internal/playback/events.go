package playback

import (
	"github.com/whitehole-music/whitehole/internal/notify"
	"github.com/whitehole-music/whitehole/internal/player"
	"github.com/whitehole-music/whitehole/internal/queue"
	"github.com/whitehole-music/whitehole/internal/track"
)

// StateChange is emitted when the output state changes.
type StateChange struct {
	Previous player.State
	Current  player.State
}

// TrackChange is emitted when playback starts on a track. Auto-advance
// and user navigation are indistinguishable here; subscribers handle all
// track side effects (recently-played, notifications, redraws) off this
// event.
type TrackChange struct {
	Previous *track.Record
	Current  track.Record
	Index    int
}

// QueueChange is emitted when the queue contents or order change.
type QueueChange struct {
	Tracks []track.Record
	Index  int
}

// ModeChange is emitted when repeat or shuffle mode changes.
type ModeChange struct {
	Repeat  queue.RepeatMode
	Shuffle bool
}

// VolumeChange is emitted when the volume level or mute state changes.
type VolumeChange struct {
	Level float64
	Muted bool
}

// Notice is a user-facing message produced by a queue or playback
// operation ("end of queue reached", "queue restarted", ...).
type Notice struct {
	Message  string
	Severity notify.Severity
}

// ErrorEvent is emitted when an operation fails in a way the session
// recovers from.
type ErrorEvent struct {
	Operation string // e.g. "play", "next"
	Err       error
}

// Package playback binds the audio output to the queue: it owns the
// session state (current track, playing flag, volume) and drives queue
// transitions on track completion and transport commands.
package playback

import (
	"time"

	"github.com/whitehole-music/whitehole/internal/player"
	"github.com/whitehole-music/whitehole/internal/queue"
	"github.com/whitehole-music/whitehole/internal/track"
)

// VolumeStore persists the volume level. Persistence is fire-and-forget;
// errors are reported through the service's error events only.
type VolumeStore interface {
	SaveVolume(level float64, muted bool) error
}

// Service defines the playback session contract.
type Service interface {
	// Transport
	PlayAt(index int) error
	PlayTrack(t track.Record) error
	Toggle()
	Pause()
	Stop()
	Next() error
	Previous() error

	// Volume
	SetVolume(level float64)
	VolumeUp()
	VolumeDown()
	ToggleMute()
	Volume() float64
	Muted() bool

	// Queue manipulation (the session never exposes the queue for
	// direct mutation)
	AddToQueue(t track.Record) error
	RemoveFromQueue(index int) error
	MoveInQueue(from, to int) error
	ClearQueue()
	SetShuffle(enabled bool)
	ToggleShuffle() bool
	SetRepeat(mode queue.RepeatMode)
	CycleRepeat() queue.RepeatMode

	// State queries
	State() player.State
	IsPlaying() bool
	Position() time.Duration
	Duration() time.Duration
	CurrentTrack() *track.Record

	// Queue queries
	QueueTracks() []track.Record
	QueueIndex() int
	QueueLen() int
	Shuffle() bool
	Repeat() queue.RepeatMode

	// Persistence round-trip
	RestoreQueue(tracks []track.Record, index int, repeat queue.RepeatMode, shuffle bool)
	RestoreVolume(level float64, muted bool)

	// Sleep timer
	SetSleepTimer(d time.Duration)
	CancelSleepTimer()

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Close() error
}

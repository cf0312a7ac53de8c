// Package recent keeps a bounded most-recent-first list of played tracks.
package recent

import (
	"sync"
	"time"

	"github.com/whitehole-music/whitehole/internal/track"
)

// DefaultCap bounds the history length.
const DefaultCap = 50

// Entry is one played track with the time it was last played.
type Entry struct {
	Track    track.Record
	PlayedAt time.Time
}

// History is a mutex-guarded play history. Playing a track already in the
// history moves it to the front instead of adding a duplicate.
type History struct {
	mu      sync.RWMutex
	entries []Entry
	cap     int

	now func() time.Time
}

func New() *History {
	return NewWithCap(DefaultCap)
}

func NewWithCap(cap int) *History {
	if cap < 1 {
		cap = DefaultCap
	}
	return &History{cap: cap, now: time.Now}
}

// Record puts the track at the front of the history.
func (h *History) Record(t track.Record) {
	t = track.Sanitize(t)

	h.mu.Lock()
	defer h.mu.Unlock()

	for i, e := range h.entries {
		if track.Same(e.Track, t) {
			h.entries = append(h.entries[:i], h.entries[i+1:]...)
			break
		}
	}
	h.entries = append([]Entry{{Track: t, PlayedAt: h.now()}}, h.entries...)
	if len(h.entries) > h.cap {
		h.entries = h.entries[:h.cap]
	}
}

// Entries returns a most-recent-first snapshot.
func (h *History) Entries() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Restore replaces the history, truncating to the cap.
func (h *History) Restore(entries []Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(entries) > h.cap {
		entries = entries[:h.cap]
	}
	h.entries = make([]Entry, len(entries))
	for i, e := range entries {
		e.Track = track.Sanitize(e.Track)
		h.entries[i] = e
	}
}

// Package favorites keeps the user's favorited tracks as an ordered,
// identity-keyed set.
package favorites

import (
	"errors"
	"iter"
	"sync"
	"time"

	"github.com/whitehole-music/whitehole/internal/track"
)

// ErrNoTrack is returned when there is nothing identifiable to favorite.
var ErrNoTrack = errors.New("no track to favorite")

// Entry is one favorited track with the time it was favorited.
type Entry struct {
	Track       track.Record
	FavoritedAt time.Time
}

// Ledger is a mutex-guarded favorites set. Insertion order is kept for
// display.
type Ledger struct {
	mu      sync.RWMutex
	entries []Entry
	byID    map[string]int // track id -> index into entries

	now func() time.Time
}

func New() *Ledger {
	return &Ledger{
		byID: make(map[string]int),
		now:  time.Now,
	}
}

// Toggle favorites the track, or unfavorites it when already present.
// The returned bool reports whether the track is favorited afterwards.
func (l *Ledger) Toggle(t track.Record) (bool, error) {
	if t.ID == "" && t.Title == "" && t.Artist == "" {
		return false, ErrNoTrack
	}
	t = track.Sanitize(t)

	l.mu.Lock()
	defer l.mu.Unlock()

	if i, ok := l.byID[t.ID]; ok {
		l.removeAt(i)
		return false, nil
	}
	l.byID[t.ID] = len(l.entries)
	l.entries = append(l.entries, Entry{Track: t, FavoritedAt: l.now()})
	return true, nil
}

func (l *Ledger) removeAt(i int) {
	delete(l.byID, l.entries[i].Track.ID)
	l.entries = append(l.entries[:i], l.entries[i+1:]...)
	for j := i; j < len(l.entries); j++ {
		l.byID[l.entries[j].Track.ID] = j
	}
}

// IsFavorite reports whether the track is in the ledger.
func (l *Ledger) IsFavorite(t track.Record) bool {
	t = track.Sanitize(t)
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.byID[t.ID]
	return ok
}

// All yields the entries in insertion order. The sequence is restartable
// and works over a snapshot, so it is safe to mutate the ledger while
// iterating.
func (l *Ledger) All() iter.Seq[Entry] {
	l.mu.RLock()
	snapshot := make([]Entry, len(l.entries))
	copy(snapshot, l.entries)
	l.mu.RUnlock()

	return func(yield func(Entry) bool) {
		for _, e := range snapshot {
			if !yield(e) {
				return
			}
		}
	}
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Restore replaces the ledger contents, skipping unidentifiable entries.
func (l *Ledger) Restore(entries []Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = l.entries[:0]
	l.byID = make(map[string]int, len(entries))
	for _, e := range entries {
		e.Track = track.Sanitize(e.Track)
		if _, ok := l.byID[e.Track.ID]; ok {
			continue
		}
		l.byID[e.Track.ID] = len(l.entries)
		l.entries = append(l.entries, e)
	}
}

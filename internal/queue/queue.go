// Package queue implements the playback queue: an ordered list of tracks
// with a current-position pointer, shuffle permutation and repeat mode.
// Every mutating operation either completes or leaves the queue unchanged
// and returns a sentinel error.
package queue

import (
	"errors"
	"math/rand/v2"
	"slices"

	"github.com/whitehole-music/whitehole/internal/track"
)

var (
	// ErrDuplicate is returned when adding a track already in the queue.
	ErrDuplicate = errors.New("track already in queue")
	// ErrIndexOutOfRange is returned for indexes outside [0, Len).
	ErrIndexOutOfRange = errors.New("queue index out of range")
	// ErrEmptyQueue is returned when navigating an empty queue.
	ErrEmptyQueue = errors.New("queue is empty")
)

// Queue owns the ordered track list, the current index, the shuffle
// snapshot and the repeat mode. The zero value is not usable; call New.
//
// Invariants: currentIndex is -1 iff the queue is empty or nothing has
// been selected yet, otherwise 0 <= currentIndex < Len. No two tracks
// share an identity. The original-order snapshot is held only while
// shuffle is active.
type Queue struct {
	tracks   []track.Record
	current  int
	repeat   RepeatMode
	shuffle  bool
	original []track.Record
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{current: -1}
}

// Len returns the number of tracks.
func (q *Queue) Len() int { return len(q.tracks) }

// IsEmpty reports whether the queue has no tracks.
func (q *Queue) IsEmpty() bool { return len(q.tracks) == 0 }

// CurrentIndex returns the current index, -1 if nothing is selected.
func (q *Queue) CurrentIndex() int { return q.current }

// Current returns the currently selected track, or nil if none.
func (q *Queue) Current() *track.Record {
	if q.current < 0 || q.current >= len(q.tracks) {
		return nil
	}
	t := q.tracks[q.current]
	return &t
}

// Tracks returns a copy of all tracks in order.
func (q *Queue) Tracks() []track.Record {
	return slices.Clone(q.tracks)
}

// Track returns the track at index, or nil if out of bounds.
func (q *Queue) Track(index int) *track.Record {
	if index < 0 || index >= len(q.tracks) {
		return nil
	}
	t := q.tracks[index]
	return &t
}

// Repeat returns the repeat mode.
func (q *Queue) Repeat() RepeatMode { return q.repeat }

// SetRepeat sets the repeat mode. No effect on queue contents.
func (q *Queue) SetRepeat(m RepeatMode) { q.repeat = m }

// CycleRepeat advances Off -> Queue -> Track -> Off and returns the new mode.
func (q *Queue) CycleRepeat() RepeatMode {
	q.repeat = q.repeat.Next()
	return q.repeat
}

// Shuffle reports whether shuffle is active.
func (q *Queue) Shuffle() bool { return q.shuffle }

// Contains reports whether a track with the same identity is queued.
func (q *Queue) Contains(t track.Record) bool {
	return q.indexOf(t) != -1
}

func (q *Queue) indexOf(t track.Record) int {
	return slices.IndexFunc(q.tracks, func(r track.Record) bool {
		return track.Same(r, t)
	})
}

// Add appends a track unless one with the same identity is already
// queued, in which case ErrDuplicate is returned and nothing changes.
func (q *Queue) Add(t track.Record) error {
	if q.Contains(t) {
		return ErrDuplicate
	}
	q.tracks = append(q.tracks, t)
	return nil
}

// RemoveAt removes the track at index and returns it.
//
// Removing an element before the current one shifts the current index
// down; removing the current element leaves the index pointing at the
// element that slid into its slot, clamped to the last slot when the
// removed element was last.
func (q *Queue) RemoveAt(index int) (track.Record, error) {
	if index < 0 || index >= len(q.tracks) {
		return track.Record{}, ErrIndexOutOfRange
	}
	removed := q.tracks[index]
	q.tracks = append(q.tracks[:index], q.tracks[index+1:]...)

	switch {
	case len(q.tracks) == 0:
		q.current = -1
	case q.current > index:
		q.current--
	case q.current == index && q.current >= len(q.tracks):
		q.current = len(q.tracks) - 1
	}
	return removed, nil
}

// Move relocates the track at from to position to, keeping the current
// track current.
func (q *Queue) Move(from, to int) error {
	if from < 0 || from >= len(q.tracks) || to < 0 || to >= len(q.tracks) {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}
	var cur *track.Record
	if q.current >= 0 {
		c := q.tracks[q.current]
		cur = &c
	}

	t := q.tracks[from]
	q.tracks = append(q.tracks[:from], q.tracks[from+1:]...)
	q.tracks = append(q.tracks[:to], append([]track.Record{t}, q.tracks[to:]...)...)

	if cur != nil {
		q.current = q.indexOf(*cur)
	}
	return nil
}

// Clear removes all tracks and resets the current index to -1.
func (q *Queue) Clear() {
	q.tracks = nil
	q.original = nil
	q.current = -1
}

// Select designates the track at index as current and returns it. This
// is the sole path by which the current track changes directly.
func (q *Queue) Select(index int) (track.Record, error) {
	if index < 0 || index >= len(q.tracks) {
		return track.Record{}, ErrIndexOutOfRange
	}
	q.current = index
	return q.tracks[index], nil
}

// Advance moves forward per the repeat/shuffle rules and returns the
// track now current together with the transition that occurred.
//
// With EndReached the index does not move and the returned track is the
// one still current.
func (q *Queue) Advance() (track.Record, Transition, error) {
	if len(q.tracks) == 0 {
		return track.Record{}, EndReached, ErrEmptyQueue
	}
	switch {
	case q.current == -1:
		q.current = 0
		return q.tracks[0], Moved, nil
	case q.repeat == RepeatTrack:
		return q.tracks[q.current], Repeated, nil
	case q.current+1 < len(q.tracks):
		q.current++
		return q.tracks[q.current], Moved, nil
	case q.repeat == RepeatQueue:
		q.current = 0
		return q.tracks[0], Restarted, nil
	case q.shuffle:
		// Endless shuffle: at the end with repeat off, reshuffle the
		// queue and start over.
		q.Reshuffle()
		q.current = 0
		return q.tracks[0], Reshuffled, nil
	default:
		return q.tracks[q.current], EndReached, nil
	}
}

// Retreat moves backward, mirroring Advance. At index 0 with repeat-queue
// it wraps to the last track; otherwise the first track restarts so that
// navigation never leaves a non-empty queue without a current track.
func (q *Queue) Retreat() (track.Record, Transition, error) {
	if len(q.tracks) == 0 {
		return track.Record{}, EndReached, ErrEmptyQueue
	}
	last := len(q.tracks) - 1
	switch {
	case q.current == -1:
		q.current = last
		return q.tracks[last], Moved, nil
	case q.repeat == RepeatTrack:
		return q.tracks[q.current], Repeated, nil
	case q.current > 0:
		q.current--
		return q.tracks[q.current], Moved, nil
	case q.repeat == RepeatQueue:
		q.current = last
		return q.tracks[last], WrappedToEnd, nil
	default:
		return q.tracks[0], Replayed, nil
	}
}

// SetShuffle toggles shuffle. Enabling snapshots the current order,
// shuffles everything but the current track and moves it to the front.
// Disabling restores the snapshot and relocates the current index by
// identity, falling back to 0 when the track is no longer present.
func (q *Queue) SetShuffle(on bool) {
	if on == q.shuffle {
		return
	}
	if on {
		q.shuffle = true
		q.original = slices.Clone(q.tracks)
		q.Reshuffle()
		return
	}

	q.shuffle = false
	cur := q.Current()
	q.tracks = q.original
	q.original = nil
	if cur == nil {
		if q.current != -1 && len(q.tracks) > 0 {
			q.current = 0
		}
		return
	}
	if i := q.indexOf(*cur); i != -1 {
		q.current = i
	} else if len(q.tracks) > 0 {
		q.current = 0
	} else {
		q.current = -1
	}
}

// Reshuffle permutes the queue in place with a Fisher-Yates shuffle,
// keeping the current track at the front. The original-order snapshot is
// left untouched. No-op when shuffle is off or fewer than two tracks.
func (q *Queue) Reshuffle() {
	if !q.shuffle || len(q.tracks) < 2 {
		return
	}
	if q.current < 0 {
		rand.Shuffle(len(q.tracks), func(i, j int) {
			q.tracks[i], q.tracks[j] = q.tracks[j], q.tracks[i]
		})
		return
	}

	cur := q.tracks[q.current]
	rest := make([]track.Record, 0, len(q.tracks)-1)
	rest = append(rest, q.tracks[:q.current]...)
	rest = append(rest, q.tracks[q.current+1:]...)
	rand.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
	q.tracks = append([]track.Record{cur}, rest...)
	q.current = 0
}

// Restore replaces the queue contents from persisted state, dropping
// duplicate identities and re-validating the index. A restored shuffle
// flag treats the saved order as the shuffled order and snapshots it, so
// disabling shuffle later is a no-op reorder.
func (q *Queue) Restore(tracks []track.Record, index int, repeat RepeatMode, shuffle bool) {
	q.tracks = q.tracks[:0]
	for _, t := range tracks {
		if q.indexOf(t) == -1 {
			q.tracks = append(q.tracks, t)
		}
	}
	if index < 0 || index >= len(q.tracks) {
		index = -1
	}
	q.current = index
	q.repeat = repeat
	q.shuffle = shuffle
	q.original = nil
	if shuffle {
		q.original = slices.Clone(q.tracks)
	}
}

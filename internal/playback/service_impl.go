package playback

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/whitehole-music/whitehole/internal/notify"
	"github.com/whitehole-music/whitehole/internal/player"
	"github.com/whitehole-music/whitehole/internal/queue"
	"github.com/whitehole-music/whitehole/internal/track"
)

// ErrNotPlayable is returned when a track carries no preview stream.
var ErrNotPlayable = errors.New("track has no preview")

// ErrPlayback wraps output failures so callers can distinguish them from
// queue errors.
var ErrPlayback = errors.New("playback failed")

const defaultVolumeStep = 0.1

// Verify serviceImpl implements Service at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	mu sync.RWMutex

	player player.Interface
	queue  *queue.Queue
	store  VolumeStore // optional, checked once at construction

	current      *track.Record
	preMuteLevel float64
	volumeStep   float64

	sleepMu    sync.Mutex
	sleepTimer *time.Timer

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates a playback session bound to the given output and queue.
// store may be nil; volume changes are then kept in memory only. step is
// the volume increment per VolumeUp/VolumeDown; values outside (0, 0.5]
// fall back to the default.
func New(p player.Interface, q *queue.Queue, store VolumeStore, step float64) Service {
	if step <= 0 || step > 0.5 {
		step = defaultVolumeStep
	}
	s := &serviceImpl{
		player:       p,
		queue:        q,
		store:        store,
		preMuteLevel: 0.5,
		volumeStep:   step,
		done:         make(chan struct{}),
	}
	go s.watchFinished()
	return s
}

// watchFinished feeds track completions into the same transition path as
// a manual Next call.
func (s *serviceImpl) watchFinished() {
	for {
		select {
		case <-s.player.FinishedChan():
			_ = s.Next()
		case <-s.done:
			return
		}
	}
}

// --- Transport ---

// PlayAt selects the track at index and starts playing it. The queue is
// left unchanged when the track cannot be played.
func (s *serviceImpl) PlayAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playIndexLocked(index)
}

func (s *serviceImpl) playIndexLocked(index int) error {
	t := s.queue.Track(index)
	if t == nil {
		s.notice("Invalid queue position", notify.Error)
		return queue.ErrIndexOutOfRange
	}
	if err := s.playLocked(*t); err != nil {
		return err
	}
	_, _ = s.queue.Select(index)
	s.emitTrackChange(index)
	return nil
}

func (s *serviceImpl) playLocked(t track.Record) error {
	if !t.Playable() {
		s.notice("No preview available", notify.Warning)
		return ErrNotPlayable
	}

	prev := s.player.State()
	if err := s.player.Play(t.PreviewURL); err != nil {
		s.player.Stop()
		s.emitState(prev)
		s.notice("Playback failed. Try again.", notify.Error)
		s.emitError("play", err)
		return fmt.Errorf("%w: %v", ErrPlayback, err)
	}
	s.emitState(prev)
	return nil
}

// PlayTrack plays the given track, enqueueing it first when it is not
// already queued.
func (s *serviceImpl) PlayTrack(t track.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := -1
	for i, r := range s.queue.Tracks() {
		if track.Same(r, t) {
			index = i
			break
		}
	}
	if index == -1 {
		if err := s.queue.Add(t); err != nil {
			return err
		}
		index = s.queue.Len() - 1
		s.emitQueueChange()
	}
	return s.playIndexLocked(index)
}

// Toggle flips play/pause. No-op when nothing has been played yet.
func (s *serviceImpl) Toggle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	prev := s.player.State()
	s.player.Toggle()
	s.emitState(prev)
}

// Pause pauses playback.
func (s *serviceImpl) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.player.State()
	s.player.Pause()
	s.emitState(prev)
}

// Stop stops playback. The current track designation survives so that
// Toggle after Stop restarts nothing unexpected.
func (s *serviceImpl) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.player.State()
	s.player.Stop()
	s.emitState(prev)
}

// Next advances the queue and plays the resulting track. Auto-advance on
// track completion goes through this same path.
func (s *serviceImpl) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, tr, err := s.queue.Advance()
	if err != nil {
		s.notice("Queue is empty", notify.Warning)
		return err
	}

	switch tr {
	case queue.Restarted:
		s.notice("Queue restarted", notify.Info)
	case queue.Reshuffled:
		s.notice("Queue reshuffled", notify.Info)
		s.emitQueueChange()
	case queue.EndReached:
		s.notice("Reached end of queue", notify.Info)
		return nil
	case queue.Moved, queue.Repeated, queue.WrappedToEnd, queue.Replayed:
	}

	return s.playIndexLocked(s.queue.CurrentIndex())
}

// Previous moves backward, replaying the first track when there is no
// previous one.
func (s *serviceImpl) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, tr, err := s.queue.Retreat()
	if err != nil {
		s.notice("Queue is empty", notify.Warning)
		return err
	}

	if tr == queue.WrappedToEnd {
		s.notice("Jumped to end of queue", notify.Info)
	}

	return s.playIndexLocked(s.queue.CurrentIndex())
}

// --- Volume ---

// SetVolume clamps to [0,1], applies the level and persists it.
func (s *serviceImpl) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.SetVolume(level)
	s.persistVolumeLocked()
	s.emitVolume()
}

func (s *serviceImpl) VolumeUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.SetVolume(s.player.Volume() + s.volumeStep)
	s.persistVolumeLocked()
	s.emitVolume()
}

func (s *serviceImpl) VolumeDown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player.SetVolume(s.player.Volume() - s.volumeStep)
	s.persistVolumeLocked()
	s.emitVolume()
}

// ToggleMute silences the output, remembering the pre-mute level once
// per mute cycle so repeated toggles restore the same volume.
func (s *serviceImpl) ToggleMute() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.player.Muted() {
		s.player.SetMuted(false)
		if s.player.Volume() == 0 {
			s.player.SetVolume(s.preMuteLevel)
		}
	} else {
		if level := s.player.Volume(); level > 0 {
			s.preMuteLevel = level
		}
		s.player.SetMuted(true)
	}
	s.persistVolumeLocked()
	s.emitVolume()
}

func (s *serviceImpl) Volume() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Volume()
}

// Muted reports the muted state; a volume of zero counts as muted.
func (s *serviceImpl) Muted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Muted() || s.player.Volume() == 0
}

// persistVolumeLocked is fire-and-forget: a storage failure is reported
// as an error event, never as an operation failure.
func (s *serviceImpl) persistVolumeLocked() {
	if s.store == nil {
		return
	}
	if err := s.store.SaveVolume(s.player.Volume(), s.player.Muted()); err != nil {
		s.emitError("save volume", err)
	}
}

// --- Queue manipulation ---

func (s *serviceImpl) AddToQueue(t track.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.queue.Add(t); err != nil {
		s.notice(fmt.Sprintf("%q is already in queue", t.Title), notify.Warning)
		return err
	}
	s.notice(fmt.Sprintf("Added %q to queue", t.Title), notify.Success)
	s.emitQueueChange()
	return nil
}

func (s *serviceImpl) RemoveFromQueue(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.queue.RemoveAt(index)
	if err != nil {
		s.notice("Invalid queue position", notify.Error)
		return err
	}
	s.notice(fmt.Sprintf("Removed %q", removed.Title), notify.Info)
	s.emitQueueChange()
	return nil
}

func (s *serviceImpl) MoveInQueue(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.queue.Move(from, to); err != nil {
		return err
	}
	s.emitQueueChange()
	return nil
}

func (s *serviceImpl) ClearQueue() {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.queue.Len()
	s.queue.Clear()
	s.notice(fmt.Sprintf("Cleared %d songs", count), notify.Success)
	s.emitQueueChange()
}

func (s *serviceImpl) SetShuffle(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue.SetShuffle(enabled)
	if enabled {
		s.notice("Shuffle enabled", notify.Info)
	} else {
		s.notice("Shuffle disabled", notify.Info)
	}
	s.emitMode()
	s.emitQueueChange()
}

func (s *serviceImpl) ToggleShuffle() bool {
	s.SetShuffle(!s.Shuffle())
	return s.Shuffle()
}

func (s *serviceImpl) SetRepeat(mode queue.RepeatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue.SetRepeat(mode)
	s.emitMode()
}

func (s *serviceImpl) CycleRepeat() queue.RepeatMode {
	s.mu.Lock()
	defer s.mu.Unlock()

	mode := s.queue.CycleRepeat()
	switch mode {
	case queue.RepeatQueue:
		s.notice("Repeat queue enabled", notify.Info)
	case queue.RepeatTrack:
		s.notice("Repeat track enabled", notify.Info)
	case queue.RepeatOff:
		s.notice("Repeat disabled", notify.Info)
	}
	s.emitMode()
	return mode
}

// --- State queries ---

func (s *serviceImpl) State() player.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.State()
}

func (s *serviceImpl) IsPlaying() bool {
	return s.State() == player.Playing
}

func (s *serviceImpl) Position() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Position()
}

func (s *serviceImpl) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.player.Duration()
}

func (s *serviceImpl) CurrentTrack() *track.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	t := *s.current
	return &t
}

// --- Queue queries ---

func (s *serviceImpl) QueueTracks() []track.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Tracks()
}

func (s *serviceImpl) QueueIndex() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.CurrentIndex()
}

func (s *serviceImpl) QueueLen() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Len()
}

func (s *serviceImpl) Shuffle() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Shuffle()
}

func (s *serviceImpl) Repeat() queue.RepeatMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.queue.Repeat()
}

// --- Persistence round-trip ---

func (s *serviceImpl) RestoreQueue(tracks []track.Record, index int, repeat queue.RepeatMode, shuffle bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue.Restore(tracks, index, repeat, shuffle)
	if t := s.queue.Current(); t != nil {
		s.current = t
	}
	s.emitQueueChange()
	s.emitMode()
}

func (s *serviceImpl) RestoreVolume(level float64, muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.player.SetVolume(level)
	s.player.SetMuted(muted)
	if level > 0 {
		s.preMuteLevel = level
	}
	s.emitVolume()
}

// --- Sleep timer ---

// SetSleepTimer pauses playback after d. A new timer replaces any
// pending one; timers never stack.
func (s *serviceImpl) SetSleepTimer(d time.Duration) {
	s.sleepMu.Lock()
	defer s.sleepMu.Unlock()

	if s.sleepTimer != nil {
		s.sleepTimer.Stop()
	}
	s.sleepTimer = time.AfterFunc(d, func() {
		s.Pause()
		s.notice("Sleep timer finished. Music paused.", notify.Info)
	})
	s.notice(fmt.Sprintf("Sleep timer set for %d minutes", int(d.Minutes())), notify.Success)
}

// CancelSleepTimer stops a pending sleep timer, if any.
func (s *serviceImpl) CancelSleepTimer() {
	s.sleepMu.Lock()
	defer s.sleepMu.Unlock()

	if s.sleepTimer != nil {
		s.sleepTimer.Stop()
		s.sleepTimer = nil
	}
}

// --- Events ---

// Subscribe creates a new event subscription.
func (s *serviceImpl) Subscribe() *Subscription {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	sub := newSubscription()
	s.subs = append(s.subs, sub)
	return sub
}

func (s *serviceImpl) broadcast(send func(*Subscription)) {
	s.subsMu.RLock()
	defer s.subsMu.RUnlock()
	for _, sub := range s.subs {
		send(sub)
	}
}

func (s *serviceImpl) emitState(prev player.State) {
	cur := s.player.State()
	if cur == prev {
		return
	}
	s.broadcast(func(sub *Subscription) {
		sub.sendState(StateChange{Previous: prev, Current: cur})
	})
}

func (s *serviceImpl) emitTrackChange(index int) {
	prev := s.current
	t := s.queue.Track(index)
	if t == nil {
		return
	}
	s.current = t
	s.broadcast(func(sub *Subscription) {
		sub.sendTrack(TrackChange{Previous: prev, Current: *t, Index: index})
	})
}

func (s *serviceImpl) emitQueueChange() {
	e := QueueChange{Tracks: s.queue.Tracks(), Index: s.queue.CurrentIndex()}
	s.broadcast(func(sub *Subscription) {
		sub.sendQueue(e)
	})
}

func (s *serviceImpl) emitMode() {
	e := ModeChange{Repeat: s.queue.Repeat(), Shuffle: s.queue.Shuffle()}
	s.broadcast(func(sub *Subscription) {
		sub.sendMode(e)
	})
}

func (s *serviceImpl) emitVolume() {
	e := VolumeChange{Level: s.player.Volume(), Muted: s.player.Muted()}
	s.broadcast(func(sub *Subscription) {
		sub.sendVolume(e)
	})
}

func (s *serviceImpl) notice(message string, severity notify.Severity) {
	s.broadcast(func(sub *Subscription) {
		sub.sendNotice(Notice{Message: message, Severity: severity})
	})
}

func (s *serviceImpl) emitError(op string, err error) {
	s.broadcast(func(sub *Subscription) {
		sub.sendError(ErrorEvent{Operation: op, Err: err})
	})
}

// --- Lifecycle ---

// Close stops the session and releases all subscriptions.
func (s *serviceImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.done)
	s.player.Stop()
	s.mu.Unlock()

	s.CancelSleepTimer()

	s.subsMu.Lock()
	for _, sub := range s.subs {
		sub.close()
	}
	s.subs = nil
	s.subsMu.Unlock()

	return nil
}

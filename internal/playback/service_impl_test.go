package playback

import (
	"errors"
	"testing"
	"time"

	"github.com/whitehole-music/whitehole/internal/notify"
	"github.com/whitehole-music/whitehole/internal/player"
	"github.com/whitehole-music/whitehole/internal/queue"
	"github.com/whitehole-music/whitehole/internal/track"
)

type volumeSave struct {
	level float64
	muted bool
}

type fakeVolumeStore struct {
	saves []volumeSave
	err   error
}

func (s *fakeVolumeStore) SaveVolume(level float64, muted bool) error {
	s.saves = append(s.saves, volumeSave{level: level, muted: muted})
	return s.err
}

func testTracks() []track.Record {
	return []track.Record{
		{ID: "1", Title: "One", Artist: "A", PreviewURL: "http://x/1.mp3"},
		{ID: "2", Title: "Two", Artist: "B", PreviewURL: "http://x/2.mp3"},
		{ID: "3", Title: "Three", Artist: "C", PreviewURL: "http://x/3.mp3"},
	}
}

func newTestService(t *testing.T) (Service, *player.Mock, *queue.Queue) {
	t.Helper()
	m := player.NewMock()
	q := queue.New()
	for _, tr := range testTracks() {
		if err := q.Add(tr); err != nil {
			t.Fatalf("Add(%s) = %v", tr.ID, err)
		}
	}
	s := New(m, q, nil, 0)
	t.Cleanup(func() { _ = s.Close() })
	return s, m, q
}

func waitTrackChange(t *testing.T, sub *Subscription) TrackChange {
	t.Helper()
	select {
	case e := <-sub.TrackChanged:
		return e
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for track change")
		return TrackChange{}
	}
}

func TestPlayAt(t *testing.T) {
	s, m, _ := newTestService(t)

	if err := s.PlayAt(1); err != nil {
		t.Fatalf("PlayAt(1) = %v", err)
	}
	if got := s.QueueIndex(); got != 1 {
		t.Errorf("QueueIndex() = %d, want 1", got)
	}
	if !s.IsPlaying() {
		t.Error("IsPlaying() = false, want true")
	}
	cur := s.CurrentTrack()
	if cur == nil || cur.ID != "2" {
		t.Errorf("CurrentTrack() = %v, want track 2", cur)
	}
	if calls := m.PlayCalls(); len(calls) != 1 || calls[0] != "http://x/2.mp3" {
		t.Errorf("PlayCalls() = %v", calls)
	}
}

func TestPlayAt_InvalidIndex(t *testing.T) {
	s, m, _ := newTestService(t)

	if err := s.PlayAt(10); !errors.Is(err, queue.ErrIndexOutOfRange) {
		t.Errorf("PlayAt(10) = %v, want ErrIndexOutOfRange", err)
	}
	if len(m.PlayCalls()) != 0 {
		t.Error("PlayAt with invalid index must not start playback")
	}
}

func TestPlayAt_NotPlayable(t *testing.T) {
	m := player.NewMock()
	q := queue.New()
	_ = q.Add(track.Record{ID: "1", Title: "One", Artist: "A", PreviewURL: "http://x/1.mp3"})
	_ = q.Add(track.Record{ID: "2", Title: "NoPreview", Artist: "B"})
	s := New(m, q, nil, 0)
	defer s.Close()

	if err := s.PlayAt(0); err != nil {
		t.Fatalf("PlayAt(0) = %v", err)
	}
	if err := s.PlayAt(1); !errors.Is(err, ErrNotPlayable) {
		t.Errorf("PlayAt(1) = %v, want ErrNotPlayable", err)
	}
	// Prior selection survives a rejected play.
	if got := s.QueueIndex(); got != 0 {
		t.Errorf("QueueIndex() = %d, want 0", got)
	}
	if cur := s.CurrentTrack(); cur == nil || cur.ID != "1" {
		t.Errorf("CurrentTrack() = %v, want track 1", cur)
	}
}

func TestPlayAt_OutputFailure(t *testing.T) {
	s, m, _ := newTestService(t)
	m.SetPlayError(errors.New("decode failed"))

	err := s.PlayAt(0)
	if !errors.Is(err, ErrPlayback) {
		t.Fatalf("PlayAt(0) = %v, want ErrPlayback", err)
	}
	if s.IsPlaying() {
		t.Error("IsPlaying() = true after failed play")
	}
	if cur := s.CurrentTrack(); cur != nil {
		t.Errorf("CurrentTrack() = %v, want nil", cur)
	}
}

func TestPlayTrack_EnqueuesWhenAbsent(t *testing.T) {
	s, _, _ := newTestService(t)
	newTrack := track.Record{ID: "4", Title: "Four", Artist: "D", PreviewURL: "http://x/4.mp3"}

	if err := s.PlayTrack(newTrack); err != nil {
		t.Fatalf("PlayTrack() = %v", err)
	}
	if got := s.QueueLen(); got != 4 {
		t.Errorf("QueueLen() = %d, want 4", got)
	}
	if got := s.QueueIndex(); got != 3 {
		t.Errorf("QueueIndex() = %d, want 3", got)
	}
}

func TestPlayTrack_ReusesQueuedTrack(t *testing.T) {
	s, _, _ := newTestService(t)

	if err := s.PlayTrack(testTracks()[1]); err != nil {
		t.Fatalf("PlayTrack() = %v", err)
	}
	if got := s.QueueLen(); got != 3 {
		t.Errorf("QueueLen() = %d, want 3 (no duplicate)", got)
	}
	if got := s.QueueIndex(); got != 1 {
		t.Errorf("QueueIndex() = %d, want 1", got)
	}
}

func TestToggle_NoCurrentTrack(t *testing.T) {
	s, m, _ := newTestService(t)

	s.Toggle()
	if got := m.State(); got != player.Stopped {
		t.Errorf("State() = %v, want Stopped", got)
	}
}

func TestToggle(t *testing.T) {
	s, _, _ := newTestService(t)

	if err := s.PlayAt(0); err != nil {
		t.Fatalf("PlayAt(0) = %v", err)
	}
	s.Toggle()
	if got := s.State(); got != player.Paused {
		t.Errorf("State() = %v, want Paused", got)
	}
	s.Toggle()
	if got := s.State(); got != player.Playing {
		t.Errorf("State() = %v, want Playing", got)
	}
}

func TestNext_Moves(t *testing.T) {
	s, _, _ := newTestService(t)
	_ = s.PlayAt(0)

	if err := s.Next(); err != nil {
		t.Fatalf("Next() = %v", err)
	}
	if got := s.QueueIndex(); got != 1 {
		t.Errorf("QueueIndex() = %d, want 1", got)
	}
}

func TestNext_EndReached(t *testing.T) {
	s, m, _ := newTestService(t)
	_ = s.PlayAt(2)
	calls := len(m.PlayCalls())

	if err := s.Next(); err != nil {
		t.Fatalf("Next() = %v", err)
	}
	if got := s.QueueIndex(); got != 2 {
		t.Errorf("QueueIndex() = %d, want 2 (end of queue)", got)
	}
	if len(m.PlayCalls()) != calls {
		t.Error("Next() at end with repeat off must not play")
	}
}

func TestNext_RepeatQueueRestarts(t *testing.T) {
	s, _, _ := newTestService(t)
	s.SetRepeat(queue.RepeatQueue)
	_ = s.PlayAt(2)

	if err := s.Next(); err != nil {
		t.Fatalf("Next() = %v", err)
	}
	if got := s.QueueIndex(); got != 0 {
		t.Errorf("QueueIndex() = %d, want 0", got)
	}
}

func TestNext_RepeatTrackReplays(t *testing.T) {
	s, m, _ := newTestService(t)
	s.SetRepeat(queue.RepeatTrack)
	_ = s.PlayAt(1)

	if err := s.Next(); err != nil {
		t.Fatalf("Next() = %v", err)
	}
	if got := s.QueueIndex(); got != 1 {
		t.Errorf("QueueIndex() = %d, want 1", got)
	}
	calls := m.PlayCalls()
	if len(calls) != 2 || calls[1] != "http://x/2.mp3" {
		t.Errorf("PlayCalls() = %v, want track 2 played twice", calls)
	}
}

func TestNext_EmptyQueue(t *testing.T) {
	m := player.NewMock()
	s := New(m, queue.New(), nil, 0)
	defer s.Close()

	if err := s.Next(); !errors.Is(err, queue.ErrEmptyQueue) {
		t.Errorf("Next() = %v, want ErrEmptyQueue", err)
	}
}

func TestPrevious_ReplaysFirst(t *testing.T) {
	s, m, _ := newTestService(t)
	_ = s.PlayAt(0)

	if err := s.Previous(); err != nil {
		t.Fatalf("Previous() = %v", err)
	}
	if got := s.QueueIndex(); got != 0 {
		t.Errorf("QueueIndex() = %d, want 0", got)
	}
	if calls := m.PlayCalls(); len(calls) != 2 {
		t.Errorf("PlayCalls() = %v, want first track replayed", calls)
	}
}

func TestPrevious_RepeatQueueWraps(t *testing.T) {
	s, _, _ := newTestService(t)
	s.SetRepeat(queue.RepeatQueue)
	_ = s.PlayAt(0)

	if err := s.Previous(); err != nil {
		t.Fatalf("Previous() = %v", err)
	}
	if got := s.QueueIndex(); got != 2 {
		t.Errorf("QueueIndex() = %d, want 2", got)
	}
}

func TestPrevious_NoSelectionPlaysLast(t *testing.T) {
	s, _, _ := newTestService(t)

	if err := s.Previous(); err != nil {
		t.Fatalf("Previous() = %v", err)
	}
	if got := s.QueueIndex(); got != 2 {
		t.Errorf("QueueIndex() = %d, want 2", got)
	}
}

func TestAutoAdvanceOnFinished(t *testing.T) {
	s, m, _ := newTestService(t)
	sub := s.Subscribe()

	if err := s.PlayAt(0); err != nil {
		t.Fatalf("PlayAt(0) = %v", err)
	}
	waitTrackChange(t, sub)

	m.SimulateFinished()
	e := waitTrackChange(t, sub)
	if e.Current.ID != "2" {
		t.Errorf("auto-advance played %q, want track 2", e.Current.ID)
	}
	if e.Index != 1 {
		t.Errorf("TrackChange.Index = %d, want 1", e.Index)
	}
}

func TestSetVolume_Persists(t *testing.T) {
	m := player.NewMock()
	store := &fakeVolumeStore{}
	s := New(m, queue.New(), store, 0)
	defer s.Close()

	s.SetVolume(0.7)
	if got := s.Volume(); got != 0.7 {
		t.Errorf("Volume() = %v, want 0.7", got)
	}
	if len(store.saves) != 1 || store.saves[0].level != 0.7 {
		t.Errorf("saves = %v, want one save at 0.7", store.saves)
	}
}

func TestSetVolume_StoreFailureIsNonFatal(t *testing.T) {
	m := player.NewMock()
	store := &fakeVolumeStore{err: errors.New("disk full")}
	s := New(m, queue.New(), store, 0)
	defer s.Close()
	sub := s.Subscribe()

	s.SetVolume(0.3)
	if got := s.Volume(); got != 0.3 {
		t.Errorf("Volume() = %v, want 0.3 despite store failure", got)
	}
	select {
	case e := <-sub.Errors:
		if e.Operation != "save volume" {
			t.Errorf("ErrorEvent.Operation = %q, want save volume", e.Operation)
		}
	default:
		t.Error("expected an error event for the failed save")
	}
}

func TestVolumeSteps(t *testing.T) {
	s, _, _ := newTestService(t)

	s.SetVolume(0.95)
	s.VolumeUp()
	if got := s.Volume(); got != 1 {
		t.Errorf("Volume() = %v after VolumeUp at 0.95, want 1", got)
	}
	s.SetVolume(0.05)
	s.VolumeDown()
	if got := s.Volume(); got != 0 {
		t.Errorf("Volume() = %v after VolumeDown at 0.05, want 0", got)
	}
}

func TestVolumeSteps_ConfiguredStep(t *testing.T) {
	m := player.NewMock()
	s := New(m, queue.New(), nil, 0.25)
	defer s.Close()

	s.SetVolume(0.5)
	s.VolumeUp()
	if got := s.Volume(); got != 0.75 {
		t.Errorf("Volume() = %v after VolumeUp with step 0.25, want 0.75", got)
	}
	s.VolumeDown()
	s.VolumeDown()
	if got := s.Volume(); got != 0.25 {
		t.Errorf("Volume() = %v after two VolumeDown with step 0.25, want 0.25", got)
	}
}

func TestVolumeSteps_InvalidStepFallsBack(t *testing.T) {
	for _, step := range []float64{0, -0.1, 0.9} {
		m := player.NewMock()
		s := New(m, queue.New(), nil, step)

		s.SetVolume(0.5)
		s.VolumeUp()
		if got := s.Volume(); got != 0.6 {
			t.Errorf("step %v: Volume() = %v after VolumeUp, want 0.6", step, got)
		}
		s.Close()
	}
}

func TestToggleMute_RestoresLevel(t *testing.T) {
	s, _, _ := newTestService(t)

	s.SetVolume(0.8)
	s.ToggleMute()
	if !s.Muted() {
		t.Error("Muted() = false after mute")
	}
	s.ToggleMute()
	if s.Muted() {
		t.Error("Muted() = true after unmute")
	}
	if got := s.Volume(); got != 0.8 {
		t.Errorf("Volume() = %v after unmute, want 0.8", got)
	}
}

func TestToggleMute_ZeroVolumeRestoresPreMuteLevel(t *testing.T) {
	s, _, _ := newTestService(t)

	s.SetVolume(0.6)
	s.ToggleMute()
	s.SetVolume(0)
	s.ToggleMute()
	if got := s.Volume(); got != 0.6 {
		t.Errorf("Volume() = %v after unmute at zero, want 0.6", got)
	}
}

func TestAddToQueue_Duplicate(t *testing.T) {
	s, _, _ := newTestService(t)
	sub := s.Subscribe()

	if err := s.AddToQueue(testTracks()[0]); !errors.Is(err, queue.ErrDuplicate) {
		t.Errorf("AddToQueue(dup) = %v, want ErrDuplicate", err)
	}
	select {
	case n := <-sub.Notices:
		if n.Severity != notify.Warning {
			t.Errorf("Notice.Severity = %v, want Warning", n.Severity)
		}
	default:
		t.Error("expected a duplicate warning notice")
	}
}

func TestRemoveFromQueue(t *testing.T) {
	s, _, _ := newTestService(t)
	_ = s.PlayAt(2)

	if err := s.RemoveFromQueue(0); err != nil {
		t.Fatalf("RemoveFromQueue(0) = %v", err)
	}
	if got := s.QueueIndex(); got != 1 {
		t.Errorf("QueueIndex() = %d, want 1", got)
	}
	if got := s.QueueLen(); got != 2 {
		t.Errorf("QueueLen() = %d, want 2", got)
	}
}

func TestClearQueue(t *testing.T) {
	s, _, _ := newTestService(t)
	_ = s.PlayAt(1)

	s.ClearQueue()
	if got := s.QueueLen(); got != 0 {
		t.Errorf("QueueLen() = %d, want 0", got)
	}
	if got := s.QueueIndex(); got != -1 {
		t.Errorf("QueueIndex() = %d, want -1", got)
	}
}

func TestToggleShuffle(t *testing.T) {
	s, _, _ := newTestService(t)

	if got := s.ToggleShuffle(); !got {
		t.Error("ToggleShuffle() = false, want true")
	}
	if got := s.ToggleShuffle(); got {
		t.Error("ToggleShuffle() = true, want false")
	}
}

func TestCycleRepeat(t *testing.T) {
	s, _, _ := newTestService(t)

	want := []queue.RepeatMode{queue.RepeatQueue, queue.RepeatTrack, queue.RepeatOff}
	for _, w := range want {
		if got := s.CycleRepeat(); got != w {
			t.Errorf("CycleRepeat() = %v, want %v", got, w)
		}
	}
}

func TestRestoreQueue(t *testing.T) {
	m := player.NewMock()
	s := New(m, queue.New(), nil, 0)
	defer s.Close()

	s.RestoreQueue(testTracks(), 1, queue.RepeatQueue, false)
	if got := s.QueueLen(); got != 3 {
		t.Errorf("QueueLen() = %d, want 3", got)
	}
	if got := s.QueueIndex(); got != 1 {
		t.Errorf("QueueIndex() = %d, want 1", got)
	}
	if got := s.Repeat(); got != queue.RepeatQueue {
		t.Errorf("Repeat() = %v, want RepeatQueue", got)
	}
	if cur := s.CurrentTrack(); cur == nil || cur.ID != "2" {
		t.Errorf("CurrentTrack() = %v, want track 2", cur)
	}
	if m.State() != player.Stopped {
		t.Error("restore must not start playback")
	}
}

func TestRestoreVolume(t *testing.T) {
	s, _, _ := newTestService(t)

	s.RestoreVolume(0.4, true)
	if got := s.Volume(); got != 0.4 {
		t.Errorf("Volume() = %v, want 0.4", got)
	}
	if !s.Muted() {
		t.Error("Muted() = false, want true")
	}
	s.ToggleMute()
	if got := s.Volume(); got != 0.4 {
		t.Errorf("Volume() = %v after unmute, want 0.4", got)
	}
}

func TestSleepTimer_PausesPlayback(t *testing.T) {
	s, _, _ := newTestService(t)
	_ = s.PlayAt(0)

	s.SetSleepTimer(20 * time.Millisecond)
	deadline := time.After(2 * time.Second)
	for s.State() != player.Paused {
		select {
		case <-deadline:
			t.Fatal("sleep timer did not pause playback")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestSleepTimer_ReplacesPending(t *testing.T) {
	s, _, _ := newTestService(t)
	_ = s.PlayAt(0)

	s.SetSleepTimer(20 * time.Millisecond)
	s.SetSleepTimer(time.Hour)
	time.Sleep(60 * time.Millisecond)
	if got := s.State(); got != player.Playing {
		t.Errorf("State() = %v, want Playing (first timer replaced)", got)
	}
}

func TestSleepTimer_Cancel(t *testing.T) {
	s, _, _ := newTestService(t)
	_ = s.PlayAt(0)

	s.SetSleepTimer(20 * time.Millisecond)
	s.CancelSleepTimer()
	time.Sleep(60 * time.Millisecond)
	if got := s.State(); got != player.Playing {
		t.Errorf("State() = %v, want Playing (timer cancelled)", got)
	}
}

func TestClose_Idempotent(t *testing.T) {
	m := player.NewMock()
	s := New(m, queue.New(), nil, 0)

	if err := s.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("second Close() = %v", err)
	}
}

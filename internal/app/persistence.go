package app

import (
	"slices"

	"github.com/whitehole-music/whitehole/internal/errmsg"
	"github.com/whitehole-music/whitehole/internal/queue"
	"github.com/whitehole-music/whitehole/internal/state"
)

// Persistence is fire-and-forget throughout: a failed save is logged and
// the session keeps going.

func (m *Model) persistQueue() {
	err := m.store.SaveQueue(state.QueueState{
		CurrentIndex: m.svc.QueueIndex(),
		RepeatMode:   int(m.svc.Repeat()),
		Shuffle:      m.svc.Shuffle(),
		Tracks:       m.svc.QueueTracks(),
	})
	if err != nil {
		m.log.Warn().Msg(errmsg.Format(errmsg.OpQueueSave, err))
	}
}

func (m *Model) persistFavorites() {
	entries := slices.Collect(m.favs.All())
	if err := m.store.SaveFavorites(entries); err != nil {
		m.log.Warn().Msg(errmsg.Format(errmsg.OpFavoritesSave, err))
	}
}

func (m *Model) persistRecent() {
	if err := m.store.SaveRecent(m.recent.Entries()); err != nil {
		m.log.Warn().Msg(errmsg.Format(errmsg.OpRecentSave, err))
	}
}

// RestoreSession loads the persisted session into the collaborators.
// Called once at startup, before the program runs.
func RestoreSession(deps Deps) {
	store := deps.Store
	if qs, err := store.GetQueue(); err == nil && qs != nil {
		deps.Service.RestoreQueue(qs.Tracks, qs.CurrentIndex, restoredRepeat(qs.RepeatMode), qs.Shuffle)
	} else if err != nil {
		deps.Log.Warn().Msg(errmsg.Format(errmsg.OpQueueLoad, err))
	}

	if vs, err := store.GetVolume(); err == nil && vs != nil {
		deps.Service.RestoreVolume(vs.Volume, vs.Muted)
	} else if err != nil {
		deps.Log.Warn().Msg(errmsg.Format(errmsg.OpVolumeLoad, err))
	}

	if entries, err := store.GetFavorites(); err == nil {
		deps.Favs.Restore(entries)
	} else {
		deps.Log.Warn().Msg(errmsg.Format(errmsg.OpFavoritesLoad, err))
	}

	if entries, err := store.GetRecent(); err == nil {
		deps.Recent.Restore(entries)
	} else {
		deps.Log.Warn().Msg(errmsg.Format(errmsg.OpRecentLoad, err))
	}
}

// restoredRepeat validates a persisted repeat mode; unknown values fall
// back to off.
func restoredRepeat(mode int) queue.RepeatMode {
	switch m := queue.RepeatMode(mode); m {
	case queue.RepeatOff, queue.RepeatQueue, queue.RepeatTrack:
		return m
	default:
		return queue.RepeatOff
	}
}

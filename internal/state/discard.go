package state

import (
	"github.com/whitehole-music/whitehole/internal/favorites"
	"github.com/whitehole-music/whitehole/internal/recent"
)

// Discard is the in-memory no-op store used when the database cannot be
// opened. The availability probe happens once at startup; after that
// every persistence call silently succeeds and every load returns
// defaults.
type Discard struct{}

func NewDiscard() *Discard { return &Discard{} }

func (*Discard) SaveQueue(QueueState) error { return nil }

func (*Discard) GetQueue() (*QueueState, error) {
	return &QueueState{CurrentIndex: -1}, nil
}

func (*Discard) SaveVolume(float64, bool) error { return nil }

func (*Discard) GetVolume() (*VolumeState, error) {
	return &VolumeState{Volume: 0.5}, nil
}

func (*Discard) SaveFavorites([]favorites.Entry) error { return nil }

func (*Discard) GetFavorites() ([]favorites.Entry, error) { return nil, nil }

func (*Discard) SaveRecent([]recent.Entry) error { return nil }

func (*Discard) GetRecent() ([]recent.Entry, error) { return nil, nil }

func (*Discard) Close() error { return nil }

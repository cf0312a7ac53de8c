// Package state persists the listening session: queue, volume,
// favorites and play history.
package state

import (
	"github.com/whitehole-music/whitehole/internal/favorites"
	"github.com/whitehole-music/whitehole/internal/recent"
)

// Interface defines the state manager contract for dependency injection
// and testing.
type Interface interface {
	SaveQueue(state QueueState) error
	GetQueue() (*QueueState, error)
	SaveVolume(level float64, muted bool) error
	GetVolume() (*VolumeState, error)
	SaveFavorites(entries []favorites.Entry) error
	GetFavorites() ([]favorites.Entry, error)
	SaveRecent(entries []recent.Entry) error
	GetRecent() ([]recent.Entry, error)
	Close() error
}

// Verify implementations at compile time.
var (
	_ Interface = (*Manager)(nil)
	_ Interface = (*Discard)(nil)
)

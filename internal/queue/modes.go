package queue

// RepeatMode defines the behavior at queue boundaries.
type RepeatMode int

const (
	RepeatOff RepeatMode = iota
	RepeatQueue
	RepeatTrack
)

// String returns the repeat mode name.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "Off"
	case RepeatQueue:
		return "Queue"
	case RepeatTrack:
		return "Track"
	default:
		return "Unknown"
	}
}

// Next cycles Off -> Queue -> Track -> Off.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatQueue
	case RepeatQueue:
		return RepeatTrack
	default:
		return RepeatOff
	}
}

// Transition describes the outcome of an Advance or Retreat call.
type Transition int

const (
	// Moved means the current index moved to an adjacent slot.
	Moved Transition = iota
	// Repeated means the same track is replayed (repeat-track mode).
	Repeated
	// Restarted means the queue wrapped from the end back to the start.
	Restarted
	// WrappedToEnd means the queue wrapped from the start back to the end.
	WrappedToEnd
	// Reshuffled means the queue was reshuffled and restarted.
	Reshuffled
	// EndReached means the end of the queue was hit and nothing moved.
	EndReached
	// Replayed means the first track restarts because there is no
	// previous track.
	Replayed
)

// String returns the transition name.
func (tr Transition) String() string {
	switch tr {
	case Moved:
		return "Moved"
	case Repeated:
		return "Repeated"
	case Restarted:
		return "Restarted"
	case WrappedToEnd:
		return "WrappedToEnd"
	case Reshuffled:
		return "Reshuffled"
	case EndReached:
		return "EndReached"
	case Replayed:
		return "Replayed"
	default:
		return "Unknown"
	}
}

package domain

import "time"

type State int

const (
	StateIdle State = iota
	StatePressing
	StateFocusing
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePressing:
		return "pressing"
	case StateFocusing:
		return "focusing"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// Snapshot is the observable state of the controller after a transition.
type Snapshot struct {
	State  State
	Origin State // meaningful while Pressing

	SessionID    string
	StartedAt    time.Time
	Elapsed      time.Duration
	BoundMinutes int
	Progress     float64

	// LastDuration is the closed session's duration in seconds, shown while Completed.
	LastDuration int

	PressStartedAt time.Time
}

// Active reports whether a session is open, including while a stop gesture is held.
func (s Snapshot) Active() bool {
	return s.SessionID != ""
}

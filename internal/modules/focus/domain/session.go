package domain

import (
	"math"
	"time"
)

const (
	PressHold        = 1500 * time.Millisecond
	TickInterval     = time.Second
	CompletionWindow = 3 * time.Second
	MaxBoundMinutes  = 720
)

// FocusSession is one tracked interval. EndTime and Duration stay nil while
// the session is open.
type FocusSession struct {
	ID        string
	StartTime time.Time
	EndTime   *time.Time
	Duration  *int
}

func NewSession(id string, start time.Time) FocusSession {
	return FocusSession{ID: id, StartTime: start}
}

func (s FocusSession) IsOpen() bool {
	return s.EndTime == nil
}

// Close marks the session finished. Duration is in whole seconds.
func (s *FocusSession) Close(end time.Time, seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	s.EndTime = &end
	s.Duration = &seconds
}

// ClampMinutes bounds a configured timer to 0..MaxBoundMinutes. Zero means no bound.
func ClampMinutes(minutes int) int {
	if minutes < 0 {
		return 0
	}
	if minutes > MaxBoundMinutes {
		return MaxBoundMinutes
	}
	return minutes
}

// Progress returns the percentage of the bound covered by elapsed, capped at
// 100. It is 0 when no bound is set.
func Progress(elapsed time.Duration, minutes int) float64 {
	if minutes <= 0 {
		return 0
	}
	pct := elapsed.Seconds() / float64(minutes*60) * 100
	return math.Min(pct, 100)
}

// ElapsedSeconds floors a wall-clock span to whole seconds.
func ElapsedSeconds(start, end time.Time) int {
	secs := int(end.Sub(start) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

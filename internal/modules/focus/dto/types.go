package dto

import "time"

type SessionOutput struct {
	ID              string
	StartTime       time.Time
	EndTime         *time.Time
	DurationSeconds *int
}

func (s SessionOutput) Open() bool {
	return s.EndTime == nil
}

type ActiveSessionOutput struct {
	SessionID      string
	StartTime      time.Time
	ElapsedSeconds int
}

type StopOutput struct {
	SessionID       string
	StartTime       time.Time
	EndTime         time.Time
	DurationSeconds int
}

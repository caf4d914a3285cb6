package in

import (
	"context"

	"lumen/internal/modules/focus/domain"
	"lumen/internal/modules/focus/dto"
)

// Usecase serves focus history to the CLI and dashboard.
type Usecase interface {
	ListSessions(ctx context.Context) ([]dto.SessionOutput, error)
	GetActive(ctx context.Context) (dto.ActiveSessionOutput, error)
	StopActive(ctx context.Context) (dto.StopOutput, error)
}

// Controller is the live session state machine driven by the terminal UI.
type Controller interface {
	BeginPress() domain.Snapshot
	CancelPress() domain.Snapshot
	Toggle() domain.Snapshot
	SetBound(minutes int) domain.Snapshot
	Refresh(ctx context.Context) domain.Snapshot
	Snapshot() domain.Snapshot
	Subscribe(fn func(domain.Snapshot)) (unsubscribe func())
}

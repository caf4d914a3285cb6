package usecase

import (
	"context"

	"lumen/internal/modules/focus/domain"
	focusdto "lumen/internal/modules/focus/dto"
	focusin "lumen/internal/modules/focus/port/in"
	focusout "lumen/internal/modules/focus/port/out"
	"lumen/internal/platform/clock"
	apperrors "lumen/internal/platform/errors"
)

type Interactor struct {
	clock clock.Clock
	store focusout.SessionStore
}

func NewInteractor(clock clock.Clock, store focusout.SessionStore) focusin.Usecase {
	return &Interactor{clock: clock, store: store}
}

func (i *Interactor) ListSessions(ctx context.Context) ([]focusdto.SessionOutput, error) {
	sessions, err := i.store.LoadSessions(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]focusdto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, focusdto.SessionOutput{
			ID:              s.ID,
			StartTime:       s.StartTime,
			EndTime:         s.EndTime,
			DurationSeconds: s.Duration,
		})
	}
	return out, nil
}

func (i *Interactor) GetActive(ctx context.Context) (focusdto.ActiveSessionOutput, error) {
	sessions, err := i.store.LoadSessions(ctx)
	if err != nil {
		return focusdto.ActiveSessionOutput{}, err
	}
	idx := latestOpen(sessions)
	if idx < 0 {
		return focusdto.ActiveSessionOutput{}, apperrors.ErrNoActiveSession
	}
	active := sessions[idx]
	return focusdto.ActiveSessionOutput{
		SessionID:      active.ID,
		StartTime:      active.StartTime,
		ElapsedSeconds: domain.ElapsedSeconds(active.StartTime, i.clock.Now()),
	}, nil
}

// StopActive closes the open session with its wall-clock duration, the same
// way a held stop gesture does.
func (i *Interactor) StopActive(ctx context.Context) (focusdto.StopOutput, error) {
	sessions, err := i.store.LoadSessions(ctx)
	if err != nil {
		return focusdto.StopOutput{}, err
	}
	idx := latestOpen(sessions)
	if idx < 0 {
		return focusdto.StopOutput{}, apperrors.ErrNoActiveSession
	}
	end := i.clock.Now()
	seconds := domain.ElapsedSeconds(sessions[idx].StartTime, end)
	sessions[idx].Close(end, seconds)
	if err := i.store.SaveSessions(ctx, sessions); err != nil {
		return focusdto.StopOutput{}, err
	}
	return focusdto.StopOutput{
		SessionID:       sessions[idx].ID,
		StartTime:       sessions[idx].StartTime,
		EndTime:         end,
		DurationSeconds: seconds,
	}, nil
}

func latestOpen(sessions []domain.FocusSession) int {
	idx := -1
	for i, s := range sessions {
		if s.IsOpen() && (idx < 0 || s.StartTime.After(sessions[idx].StartTime)) {
			idx = i
		}
	}
	return idx
}

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	focusout "lumen/internal/modules/focus/adapter/out"
	"lumen/internal/modules/focus/domain"
	"lumen/internal/modules/focus/usecase"
	apperrors "lumen/internal/platform/errors"
	"lumen/internal/platform/kvstore"
)

type fixedClock struct{ now time.Time }

func (f fixedClock) Now() time.Time { return f.now }

func TestStopActiveClosesWithWallClockDuration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	now := time.Date(2024, 4, 24, 10, 0, 0, 0, time.UTC)
	store := focusout.NewGatewaySessionStore(kvstore.NewMemoryStore())
	done := domain.NewSession("done", now.Add(-3*time.Hour))
	done.Close(now.Add(-2*time.Hour), 3600)
	open := domain.NewSession("open", now.Add(-25*time.Minute-700*time.Millisecond))
	if err := store.SaveSessions(ctx, []domain.FocusSession{done, open}); err != nil {
		t.Fatalf("seed sessions: %v", err)
	}
	uc := usecase.NewInteractor(fixedClock{now: now}, store)

	active, err := uc.GetActive(ctx)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active.SessionID != "open" || active.ElapsedSeconds != 1500 {
		t.Fatalf("unexpected active session: %+v", active)
	}

	out, err := uc.StopActive(ctx)
	if err != nil {
		t.Fatalf("stop active: %v", err)
	}
	if out.DurationSeconds != 1500 {
		t.Fatalf("duration = %d, want 1500", out.DurationSeconds)
	}

	sessions, err := uc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	for _, s := range sessions {
		if s.Open() {
			t.Fatalf("session %s still open", s.ID)
		}
	}

	if _, err := uc.StopActive(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
}

func TestGetActiveWithEmptyStore(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(fixedClock{now: time.Now()}, focusout.NewGatewaySessionStore(kvstore.NewMemoryStore()))
	if _, err := uc.GetActive(context.Background()); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
	sessions, err := uc.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(sessions))
	}
}

package usecase

import (
	"context"

	"go.uber.org/zap"

	"lumen/internal/modules/dashboard/domain"
	dashboarddto "lumen/internal/modules/dashboard/dto"
	dashboardin "lumen/internal/modules/dashboard/port/in"
	focusin "lumen/internal/modules/focus/port/in"
	"lumen/internal/platform/clock"
)

type Interactor struct {
	clock clock.Clock
	focus focusin.Usecase
	log   *zap.Logger
}

func NewInteractor(clock clock.Clock, focus focusin.Usecase, log *zap.Logger) dashboardin.Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{clock: clock, focus: focus, log: log}
}

// Summary aggregates the last three weeks of closed sessions. Unreadable
// history yields an empty summary rather than an error.
func (i *Interactor) Summary(ctx context.Context) (dashboarddto.SummaryOutput, error) {
	sessions, err := i.focus.ListSessions(ctx)
	if err != nil {
		i.log.Warn("read focus sessions for dashboard", zap.Error(err))
		return dashboarddto.SummaryOutput{Days: []dashboarddto.DayOutput{}, Empty: true}, nil
	}
	entries := make([]domain.Entry, 0, len(sessions))
	for _, s := range sessions {
		if s.Open() || s.DurationSeconds == nil {
			continue
		}
		entries = append(entries, domain.Entry{Start: s.StartTime, DurationSeconds: *s.DurationSeconds})
	}

	summary := domain.Summarize(entries, i.clock.Now())
	out := dashboarddto.SummaryOutput{
		Days:         make([]dashboarddto.DayOutput, 0, len(summary.Days)),
		TotalHours:   summary.Total,
		DailyAverage: summary.DailyAverage,
		Empty:        summary.Empty(),
	}
	for _, d := range summary.Days {
		out.Days = append(out.Days, dashboarddto.DayOutput{Date: d.Date, Hours: d.Hours})
	}
	return out, nil
}

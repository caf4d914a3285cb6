package out

import (
	"context"
	"fmt"
	"time"

	"lumen/internal/modules/focus/domain"
	focusout "lumen/internal/modules/focus/port/out"
	"lumen/internal/platform/kvstore"
)

// isoMillis matches the JavaScript Date#toISOString layout the stored data uses.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

type sessionRecord struct {
	ID        string  `json:"id"`
	StartTime string  `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Duration  *int    `json:"duration"`
}

type GatewaySessionStore struct {
	gateway kvstore.Gateway
}

func NewGatewaySessionStore(gateway kvstore.Gateway) focusout.SessionStore {
	return &GatewaySessionStore{gateway: gateway}
}

func (s *GatewaySessionStore) LoadSessions(ctx context.Context) ([]domain.FocusSession, error) {
	records, _, err := kvstore.LoadSeq[sessionRecord](ctx, s.gateway, kvstore.KeyFocusSessions)
	if err != nil {
		return nil, err
	}
	out := make([]domain.FocusSession, 0, len(records))
	for _, r := range records {
		session, err := fromRecord(r)
		if err != nil {
			return nil, err
		}
		out = append(out, session)
	}
	return out, nil
}

func (s *GatewaySessionStore) SaveSessions(ctx context.Context, sessions []domain.FocusSession) error {
	records := make([]sessionRecord, 0, len(sessions))
	for _, session := range sessions {
		records = append(records, toRecord(session))
	}
	return kvstore.SaveSeq(ctx, s.gateway, kvstore.KeyFocusSessions, records)
}

func toRecord(s domain.FocusSession) sessionRecord {
	r := sessionRecord{ID: s.ID, StartTime: s.StartTime.UTC().Format(isoMillis)}
	if s.EndTime != nil {
		end := s.EndTime.UTC().Format(isoMillis)
		r.EndTime = &end
	}
	if s.Duration != nil {
		d := *s.Duration
		r.Duration = &d
	}
	return r
}

func fromRecord(r sessionRecord) (domain.FocusSession, error) {
	start, err := time.Parse(time.RFC3339Nano, r.StartTime)
	if err != nil {
		return domain.FocusSession{}, fmt.Errorf("session %s start time: %w", r.ID, err)
	}
	s := domain.FocusSession{ID: r.ID, StartTime: start}
	if r.EndTime != nil {
		end, err := time.Parse(time.RFC3339Nano, *r.EndTime)
		if err != nil {
			return domain.FocusSession{}, fmt.Errorf("session %s end time: %w", r.ID, err)
		}
		s.EndTime = &end
	}
	if r.Duration != nil {
		d := *r.Duration
		s.Duration = &d
	}
	return s, nil
}

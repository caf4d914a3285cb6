package out

import (
	"context"

	"lumen/internal/modules/focus/domain"
)

// SessionStore persists the ordered focusSessions sequence. An absent
// sequence loads as empty with no error.
type SessionStore interface {
	LoadSessions(ctx context.Context) ([]domain.FocusSession, error)
	SaveSessions(ctx context.Context, sessions []domain.FocusSession) error
}

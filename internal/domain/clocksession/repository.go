package clocksession

import (
	"context"
	"time"
)

type ClockSessionRepository interface {
	// Create inserts a new open session. The store enforces at most one open
	// session per worker; a unique violation surfaces as ErrSessionAlreadyActive.
	Create(ctx context.Context, session ClockSession) (ClockSession, error)

	GetByID(ctx context.Context, id string) (ClockSession, error)

	// GetOpenByUser returns the worker's open session, ErrNoActiveSession when none.
	GetOpenByUser(ctx context.Context, userID string) (ClockSession, error)

	// Close writes the terminal state of a session: clock-out time, notes,
	// clock-out GPS fields, is_active=false.
	Close(ctx context.Context, session ClockSession) error

	List(ctx context.Context, filter SessionFilter) ([]ClockSession, int64, error)

	// GetStaleActive returns open sessions whose clock-in is at or before the cutoff.
	GetStaleActive(ctx context.Context, cutoff time.Time) ([]ClockSession, error)
}

package clocksession

import "context"

type ClockSessionService interface {
	// ClockIn opens a session for the authenticated worker.
	ClockIn(ctx context.Context, req ClockInRequest) (SessionResponse, error)

	// ClockOut closes the worker's open session and derives a time entry from
	// its duration. The session closes even when the derived entry is rejected
	// by a weekly approval lock; the response then carries a warning.
	ClockOut(ctx context.Context, req ClockOutRequest) (ClockOutResponse, error)

	// GetStatus reports whether the authenticated worker can clock in or out.
	GetStatus(ctx context.Context) (SessionStatusResponse, error)

	// ListSessions returns sessions visible to foremen and admins.
	ListSessions(ctx context.Context, filter SessionFilter) (ListSessionsResponse, error)
}

package clocksession

import "errors"

var (
	ErrSessionAlreadyActive = errors.New("an active clock session already exists for this worker")
	ErrNoActiveSession      = errors.New("no active clock session for this worker")
	ErrSessionNotFound      = errors.New("clock session not found")
	ErrSessionClosed        = errors.New("clock session is already closed")
)

package user

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailExists      = errors.New("email already registered")
	ErrInvalidRole      = errors.New("invalid role")
	ErrUserInactive     = errors.New("user is inactive")
	ErrNotClockInUser   = errors.New("user does not track time with clock sessions")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrPermissionDenied = errors.New("permission denied")
)

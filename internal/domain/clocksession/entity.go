package clocksession

import (
	"math"
	"time"
)

type ClockSession struct {
	ID              string
	UserID          string
	JobID           string
	LaborActivityID string
	ClockIn         time.Time
	ClockOut        *time.Time
	Notes           *string
	IsActive        bool

	ClockInLatitude    *float64
	ClockInLongitude   *float64
	ClockInAccuracy    *float64
	ClockInDistanceMi  *float64
	ClockOutLatitude   *float64
	ClockOutLongitude  *float64
	ClockOutAccuracy   *float64
	ClockOutDistanceMi *float64

	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated on joined reads only.
	UserName     string
	JobCode      string
	ActivityName string
}

// IsOpen reports whether the session is still running.
func (s *ClockSession) IsOpen() bool {
	return s.IsActive && s.ClockOut == nil
}

// DurationHours returns the session length in hours rounded to 2 decimals.
// Open sessions are measured against asOf.
func (s *ClockSession) DurationHours(asOf time.Time) float64 {
	end := asOf
	if s.ClockOut != nil {
		end = *s.ClockOut
	}
	hours := end.Sub(s.ClockIn).Hours()
	return math.Round(hours*100) / 100
}

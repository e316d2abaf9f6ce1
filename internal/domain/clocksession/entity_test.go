package clocksession

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClockSession_IsOpen(t *testing.T) {
	s := ClockSession{IsActive: true}
	assert.True(t, s.IsOpen())

	out := time.Now()
	s.ClockOut = &out
	assert.False(t, s.IsOpen())

	s = ClockSession{IsActive: false}
	assert.False(t, s.IsOpen())
}

func TestClockSession_DurationHours(t *testing.T) {
	clockIn := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)

	// Open session measured against asOf
	s := ClockSession{ClockIn: clockIn, IsActive: true}
	assert.Equal(t, 4.25, s.DurationHours(clockIn.Add(4*time.Hour+15*time.Minute)))

	// Closed session ignores asOf
	out := clockIn.Add(8 * time.Hour)
	s.ClockOut = &out
	assert.Equal(t, 8.0, s.DurationHours(clockIn.Add(30*time.Hour)))
}

func TestClockSession_DurationHours_RoundsToTwoDecimals(t *testing.T) {
	clockIn := time.Date(2025, 6, 2, 8, 0, 0, 0, time.UTC)
	out := clockIn.Add(7*time.Hour + 59*time.Minute + 59*time.Second)
	s := ClockSession{ClockIn: clockIn, ClockOut: &out}
	assert.Equal(t, 8.0, s.DurationHours(time.Time{}))
}

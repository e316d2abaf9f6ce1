package devicelog

import "time"

const (
	ActionClockIn  = "IN"
	ActionClockOut = "OUT"
)

// DeviceLog is an append-only audit row recorded on every clock event.
type DeviceLog struct {
	ID        string
	UserID    string
	SessionID *string
	Action    string
	DeviceID  *string
	UserAgent *string
	Latitude  *float64
	Longitude *float64
	Accuracy  *float64
	CreatedAt time.Time

	// Populated on joined reads only.
	UserName string
}

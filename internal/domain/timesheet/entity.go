package timesheet

import "time"

type TimeEntry struct {
	ID              string
	UserID          string
	JobID           string
	LaborActivityID string
	Date            time.Time
	Hours           float64
	Notes           *string
	Approved        bool
	ApprovedBy      *string
	ApprovedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Populated on joined reads only.
	UserName     string
	JobCode      string
	ActivityName string
}

type WeeklyApprovalLock struct {
	ID         string
	UserID     string
	JobID      string
	WeekStart  time.Time
	ApprovedBy string
	ApprovedAt time.Time

	// Populated on joined reads only.
	ApproverName string
}

// ClampHours bounds hours to the storable range [0, 24]. Out-of-range values
// are clamped silently, never rejected.
func ClampHours(hours float64) float64 {
	if hours < 0 {
		return 0
	}
	if hours > 24 {
		return 24
	}
	return hours
}

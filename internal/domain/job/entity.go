package job

import "time"

type JobStatus string

const (
	StatusActive   JobStatus = "active"
	StatusComplete JobStatus = "complete"
	StatusOnHold   JobStatus = "on_hold"
)

type Job struct {
	ID          string
	Code        string
	Description string
	Status      JobStatus
	Latitude    *float64
	Longitude   *float64
	Address     *string
	ForemanID   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// ForemanName is populated on joined reads only.
	ForemanName string
}

// HasCoordinates reports whether the job site has been geocoded. Distance
// classification is skipped for jobs without coordinates.
func (j *Job) HasCoordinates() bool {
	return j.Latitude != nil && j.Longitude != nil
}

// IsClockable reports whether new clock sessions may open against this job.
func (j *Job) IsClockable() bool {
	return j.Status == StatusActive
}

type CrewMember struct {
	UserID     string
	Name       string
	Email      string
	Role       string
	AssignedAt time.Time
}

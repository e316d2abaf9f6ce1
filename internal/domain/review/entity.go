package review

import "time"

// ForemanReviewedTime is a foreman's correction of a worker's hours for one
// (worker, job, activity, date). Rows stay mutable drafts until the containing
// week is finalized.
type ForemanReviewedTime struct {
	ID              string
	UserID          string
	JobID           string
	LaborActivityID string
	WorkDate        time.Time
	ReviewedHours   float64
	Notes           *string
	// TimeEntryID back-links the worker submission this row corrects, when one
	// exists. Back-linked entries drop out of effective-time resolution.
	TimeEntryID *string
	ReviewedBy  string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Populated on joined reads only.
	UserName     string
	JobCode      string
	ActivityName string
	ReviewerName string
}

type Source string

const (
	SourceReviewed  Source = "reviewed"
	SourceSubmitted Source = "submitted"
)

// SubmittedEntry is the slice of a ledger row that resolution needs.
type SubmittedEntry struct {
	ID              string
	UserID          string
	JobID           string
	LaborActivityID string
	Date            time.Time
	Hours           float64
	Notes           *string
	Approved        bool

	UserName     string
	JobCode      string
	ActivityName string
}

// EffectiveRecord is the single source of truth for one (worker, job,
// activity, date) after reconciliation.
type EffectiveRecord struct {
	UserID          string
	UserName        string
	JobID           string
	JobCode         string
	LaborActivityID string
	ActivityName    string
	Date            time.Time
	Hours           float64
	Notes           *string
	Source          Source
	IsReviewed      bool
	Approved        bool
}

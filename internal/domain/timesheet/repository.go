package timesheet

import (
	"context"
	"time"
)

// TimeEntryRepository - interface for time_entries table
type TimeEntryRepository interface {
	// Upsert writes an entry with one atomic conditional statement: insert, or
	// update the existing (user, job, activity, date) row only while it is
	// unapproved. An approved row absorbs zero writes and surfaces
	// ErrEntryApproved.
	Upsert(ctx context.Context, entry TimeEntry) (TimeEntry, error)
	GetByID(ctx context.Context, id string) (TimeEntry, error)
	// DeleteRange clears a worker's unapproved rows on one job over [from, to].
	DeleteRange(ctx context.Context, userID, jobID string, from, to time.Time) error
	QueryRange(ctx context.Context, userID, jobID string, from, to time.Time) ([]TimeEntry, error)
	// QueryAll returns every entry in [from, to], optionally scoped to a user
	// and/or job, without pagination. Reconciliation and reporting read through
	// this.
	QueryAll(ctx context.Context, userID, jobID *string, from, to time.Time) ([]TimeEntry, error)
	List(ctx context.Context, filter EntryFilter) ([]TimeEntry, int64, error)
	// ApproveRange stamps every unapproved row in the range and returns how many.
	ApproveRange(ctx context.Context, userID, jobID string, from, to time.Time, approverID string, approvedAt time.Time) (int, error)
	// DistinctDates returns the dates that carry entries in the range, ascending.
	DistinctDates(ctx context.Context, userID, jobID string, from, to time.Time) ([]time.Time, error)
}

// ApprovalLockRepository - interface for weekly_approval_locks table
type ApprovalLockRepository interface {
	// Create inserts the lock row. The unique (user, job, week_start) constraint
	// surfaces a concurrent duplicate as ErrWeekAlreadyApproved.
	Create(ctx context.Context, lock WeeklyApprovalLock) (WeeklyApprovalLock, error)
	Get(ctx context.Context, userID, jobID string, weekStart time.Time) (WeeklyApprovalLock, error)
	IsLocked(ctx context.Context, userID, jobID string, weekStart time.Time) (bool, error)
	ListByWeek(ctx context.Context, weekStart time.Time) ([]WeeklyApprovalLock, error)
}

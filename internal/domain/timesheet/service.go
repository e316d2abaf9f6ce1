package timesheet

import "context"

type TimesheetService interface {
	// UpsertDay records one worker's day on one job across activities. All
	// lines land in a single transaction behind the weekly lock check.
	UpsertDay(ctx context.Context, req UpsertDayRequest) ([]TimeEntryResponse, error)

	// SubmitWeek replaces a worker's unapproved week on one job with the grid:
	// lock check, clear, then one conditional upsert per non-zero day, one
	// transaction. Resubmission is idempotent.
	SubmitWeek(ctx context.Context, req SubmitWeekRequest) (WeekResponse, error)

	GetWeek(ctx context.Context, userID, jobID, weekStart string) (WeekResponse, error)

	// ApproveWeek stamps the week's entries and installs the approval lock in
	// one transaction. Days without entries only warn, never block.
	ApproveWeek(ctx context.Context, req ApproveWeekRequest) (ApproveWeekResponse, error)

	ListEntries(ctx context.Context, filter EntryFilter) (ListEntriesResponse, error)
}

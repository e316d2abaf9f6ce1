package timesheet

import "errors"

var (
	ErrPeriodLocked        = errors.New("week is locked by an approval and no longer accepts writes")
	ErrEntryApproved       = errors.New("time entry is approved and can no longer change")
	ErrWeekAlreadyApproved = errors.New("week is already approved")
	ErrEntryNotFound       = errors.New("time entry not found")
	ErrLockNotFound        = errors.New("weekly approval lock not found")
)

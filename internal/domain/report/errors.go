package report

import "errors"

var (
	ErrInvalidDateRange = errors.New("end date must be after start date")
	ErrNoDataFound      = errors.New("no data found for the specified criteria")
	ErrFeedDisabled     = errors.New("payroll feed is not configured")
)

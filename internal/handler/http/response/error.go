package response

import (
	"errors"
	"net/http"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/clocksession"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/job"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/master/activity"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/master/trade"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/report"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/review"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/timesheet"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/user"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Clock session errors
	case errors.Is(err, clocksession.ErrSessionAlreadyActive):
		Conflict(w, "An active clock session already exists")
	case errors.Is(err, clocksession.ErrSessionClosed):
		Conflict(w, "Clock session is already closed")
	case errors.Is(err, clocksession.ErrNoActiveSession):
		NotFound(w, "No active clock session")
	case errors.Is(err, clocksession.ErrSessionNotFound):
		NotFound(w, "Clock session not found")

	// Timesheet errors
	case errors.Is(err, timesheet.ErrPeriodLocked):
		Locked(w, "Week is approved and no longer accepts changes")
	case errors.Is(err, timesheet.ErrEntryApproved):
		Locked(w, "Time entry is approved and can no longer change")
	case errors.Is(err, timesheet.ErrWeekAlreadyApproved):
		Conflict(w, "Week is already approved")
	case errors.Is(err, timesheet.ErrEntryNotFound):
		NotFound(w, "Time entry not found")
	case errors.Is(err, timesheet.ErrLockNotFound):
		NotFound(w, "Weekly approval not found")

	// Review errors
	case errors.Is(err, review.ErrReviewNotFound):
		NotFound(w, "Reviewed time row not found")

	// Worker errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "Worker not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "Account is inactive")
	case errors.Is(err, user.ErrNotClockInUser):
		Forbidden(w, "Account does not track time with clock sessions")
	case errors.Is(err, user.ErrPermissionDenied):
		Forbidden(w, "Permission denied")

	// Job errors
	case errors.Is(err, job.ErrJobNotFound):
		NotFound(w, "Job not found")
	case errors.Is(err, job.ErrJobCodeExists):
		Conflict(w, "Job with this code already exists")
	case errors.Is(err, job.ErrJobNotActive):
		BadRequest(w, "Job is not active", nil)
	case errors.Is(err, job.ErrJobHasTimeRecords):
		Conflict(w, "Job has time records; only status and foreman may change")
	case errors.Is(err, job.ErrWorkerNotAssigned):
		NotFound(w, "Worker is not assigned to this job")
	case errors.Is(err, job.ErrTradeNotAssigned):
		NotFound(w, "Trade is not assigned to this job")
	case errors.Is(err, job.ErrActivityNotInScope):
		BadRequest(w, "Labor activity is not available on this job", nil)

	// Catalog errors
	case errors.Is(err, trade.ErrTradeNotFound):
		NotFound(w, "Trade not found")
	case errors.Is(err, trade.ErrTradeNameExists):
		Conflict(w, "Trade with this name already exists")
	case errors.Is(err, activity.ErrActivityNotFound):
		NotFound(w, "Labor activity not found")
	case errors.Is(err, activity.ErrActivityNameExists):
		Conflict(w, "Labor activity with this name already exists for this trade")
	case errors.Is(err, activity.ErrActivityInactive):
		BadRequest(w, "Labor activity is inactive", nil)

	// Report errors
	case errors.Is(err, report.ErrNoDataFound):
		NotFound(w, "No data found for the specified criteria")
	case errors.Is(err, report.ErrFeedDisabled):
		BadRequest(w, "Payroll feed is not configured", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

package review

import (
	"time"

	"github.com/sitecrew/labortrack-backend-go/internal/pkg/validator"
)

// ReviewLine is one corrected row within a draft save.
type ReviewLine struct {
	UserID          string  `json:"user_id"`
	LaborActivityID string  `json:"labor_activity_id"`
	WorkDate        string  `json:"work_date"` // YYYY-MM-DD
	ReviewedHours   float64 `json:"reviewed_hours"`
	Notes           *string `json:"notes,omitempty"`
	TimeEntryID     *string `json:"time_entry_id,omitempty"`
}

type SaveDraftRequest struct {
	JobID string       `json:"job_id"`
	Lines []ReviewLine `json:"lines"`
}

func (r *SaveDraftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_id",
			Message: "job_id is required",
		})
	}

	if len(r.Lines) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "lines",
			Message: "at least one review line is required",
		})
	}
	for _, line := range r.Lines {
		if validator.IsEmpty(line.UserID) {
			errs = append(errs, validator.ValidationError{
				Field:   "lines",
				Message: "user_id is required on every line",
			})
			break
		}
		if validator.IsEmpty(line.LaborActivityID) {
			errs = append(errs, validator.ValidationError{
				Field:   "lines",
				Message: "labor_activity_id is required on every line",
			})
			break
		}
		if _, valid := validator.IsValidDate(line.WorkDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "lines",
				Message: "work_date must be in YYYY-MM-DD format on every line",
			})
			break
		}
		if !validator.IsValidHours(line.ReviewedHours) {
			errs = append(errs, validator.ValidationError{
				Field:   "lines",
				Message: "reviewed_hours must be a non-negative number",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type FinalizeRequest struct {
	UserID    string `json:"user_id"`
	JobID     string `json:"job_id"`
	WeekStart string `json:"week_start"` // YYYY-MM-DD, a Monday
}

func (r *FinalizeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.UserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "user_id",
			Message: "user_id is required",
		})
	}
	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_id",
			Message: "job_id is required",
		})
	}

	if validator.IsEmpty(r.WeekStart) {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start is required",
		})
	} else if parsed, valid := validator.IsValidDate(r.WeekStart); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be in YYYY-MM-DD format",
		})
	} else if !validator.IsMonday(parsed) {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be a Monday",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type FinalizeResponse struct {
	UserID          string `json:"user_id"`
	JobID           string `json:"job_id"`
	WeekStart       string `json:"week_start"`
	ApprovedBy      string `json:"approved_by"`
	ApprovedAt      string `json:"approved_at"`
	EntriesApproved int    `json:"entries_approved"`
	Warning         string `json:"warning,omitempty"`
}

// RangeFilter scopes reviewed-row reads. Nil UserID or JobID leaves that
// dimension unscoped.
type RangeFilter struct {
	UserID *string
	JobID  *string
	From   time.Time
	To     time.Time
}

type EffectiveTimeFilter struct {
	UserID       *string `json:"user_id,omitempty"`
	JobID        *string `json:"job_id,omitempty"`
	StartDate    string  `json:"start_date"` // YYYY-MM-DD
	EndDate      string  `json:"end_date"`   // YYYY-MM-DD
	ReviewedOnly bool    `json:"reviewed_only"`
}

func (f *EffectiveTimeFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else if _, valid := validator.IsValidDate(f.StartDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	if validator.IsEmpty(f.EndDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date is required",
		})
	} else if _, valid := validator.IsValidDate(f.EndDate); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewedTimeResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	UserName        string  `json:"user_name,omitempty"`
	JobID           string  `json:"job_id"`
	JobCode         string  `json:"job_code,omitempty"`
	LaborActivityID string  `json:"labor_activity_id"`
	ActivityName    string  `json:"activity_name,omitempty"`
	WorkDate        string  `json:"work_date"`
	ReviewedHours   float64 `json:"reviewed_hours"`
	Notes           *string `json:"notes,omitempty"`
	TimeEntryID     *string `json:"time_entry_id,omitempty"`
	ReviewedBy      string  `json:"reviewed_by"`
	ReviewerName    string  `json:"reviewer_name,omitempty"`
}

func ToReviewedTimeResponse(r ForemanReviewedTime) ReviewedTimeResponse {
	return ReviewedTimeResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		UserName:        r.UserName,
		JobID:           r.JobID,
		JobCode:         r.JobCode,
		LaborActivityID: r.LaborActivityID,
		ActivityName:    r.ActivityName,
		WorkDate:        r.WorkDate.Format("2006-01-02"),
		ReviewedHours:   r.ReviewedHours,
		Notes:           r.Notes,
		TimeEntryID:     r.TimeEntryID,
		ReviewedBy:      r.ReviewedBy,
		ReviewerName:    r.ReviewerName,
	}
}

type EffectiveRecordResponse struct {
	UserID          string  `json:"user_id"`
	UserName        string  `json:"user_name"`
	JobID           string  `json:"job_id"`
	JobCode         string  `json:"job_code"`
	LaborActivityID string  `json:"labor_activity_id"`
	ActivityName    string  `json:"activity_name"`
	Date            string  `json:"date"`
	Hours           float64 `json:"hours"`
	Notes           *string `json:"notes,omitempty"`
	Source          string  `json:"source"`
	IsReviewed      bool    `json:"is_reviewed"`
	Approved        bool    `json:"approved"`
}

func ToEffectiveRecordResponse(rec EffectiveRecord) EffectiveRecordResponse {
	return EffectiveRecordResponse{
		UserID:          rec.UserID,
		UserName:        rec.UserName,
		JobID:           rec.JobID,
		JobCode:         rec.JobCode,
		LaborActivityID: rec.LaborActivityID,
		ActivityName:    rec.ActivityName,
		Date:            rec.Date.Format("2006-01-02"),
		Hours:           rec.Hours,
		Notes:           rec.Notes,
		Source:          string(rec.Source),
		IsReviewed:      rec.IsReviewed,
		Approved:        rec.Approved,
	}
}

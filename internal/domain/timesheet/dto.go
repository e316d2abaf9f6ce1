package timesheet

import (
	"strings"
	"time"

	"github.com/sitecrew/labortrack-backend-go/internal/pkg/validator"
)

// EntryLine is one activity's hours within a single-day submission.
type EntryLine struct {
	LaborActivityID string  `json:"labor_activity_id"`
	Hours           float64 `json:"hours"`
	Notes           *string `json:"notes,omitempty"`
}

// UpsertDayRequest records one worker's day on one job, split across
// activities. UserID is optional; foremen submit on behalf of crew with it,
// workers leave it empty for themselves.
type UpsertDayRequest struct {
	UserID string      `json:"user_id,omitempty"`
	JobID  string      `json:"job_id"`
	Date   string      `json:"date"` // YYYY-MM-DD
	Lines  []EntryLine `json:"lines"`
}

func (r *UpsertDayRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_id",
			Message: "job_id is required",
		})
	}

	if validator.IsEmpty(r.Date) {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date is required",
		})
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	if len(r.Lines) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "lines",
			Message: "at least one activity line is required",
		})
	}
	for _, line := range r.Lines {
		if validator.IsEmpty(line.LaborActivityID) {
			errs = append(errs, validator.ValidationError{
				Field:   "lines",
				Message: "labor_activity_id is required on every line",
			})
			break
		}
		if !validator.IsValidHours(line.Hours) {
			errs = append(errs, validator.ValidationError{
				Field:   "lines",
				Message: "hours must be a non-negative number",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// DayCell is one day of the weekly grid.
type DayCell struct {
	Date            string  `json:"date"` // YYYY-MM-DD
	LaborActivityID string  `json:"labor_activity_id"`
	Hours           float64 `json:"hours"`
	Notes           *string `json:"notes,omitempty"`
}

// SubmitWeekRequest replaces a worker's unapproved week on one job with the
// submitted grid. Days absent from the grid are cleared.
type SubmitWeekRequest struct {
	UserID    string    `json:"user_id,omitempty"`
	JobID     string    `json:"job_id"`
	WeekStart string    `json:"week_start"` // YYYY-MM-DD, a Monday
	Days      []DayCell `json:"days"`
}

func (r *SubmitWeekRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_id",
			Message: "job_id is required",
		})
	}

	weekStart, weekStartValid := time.Time{}, false
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
	} else {
		weekStart, weekStartValid = parsed, true
	}

	for _, day := range r.Days {
		parsed, valid := validator.IsValidDate(day.Date)
		if !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "days",
				Message: "every day must have a date in YYYY-MM-DD format",
			})
			break
		}
		if weekStartValid {
			offset := parsed.Sub(weekStart).Hours() / 24
			if offset < 0 || offset > 6 {
				errs = append(errs, validator.ValidationError{
					Field:   "days",
					Message: "every day must fall within the submitted week",
				})
				break
			}
		}
		if day.Hours != 0 && validator.IsEmpty(day.LaborActivityID) {
			errs = append(errs, validator.ValidationError{
				Field:   "days",
				Message: "labor_activity_id is required on days with hours",
			})
			break
		}
		if !validator.IsValidHours(day.Hours) {
			errs = append(errs, validator.ValidationError{
				Field:   "days",
				Message: "hours must be a non-negative number",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveWeekRequest struct {
	UserID    string `json:"user_id"`
	JobID     string `json:"job_id"`
	WeekStart string `json:"week_start"` // YYYY-MM-DD, a Monday
}

func (r *ApproveWeekRequest) Validate() error {
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

type TimeEntryResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	UserName        string  `json:"user_name,omitempty"`
	JobID           string  `json:"job_id"`
	JobCode         string  `json:"job_code,omitempty"`
	LaborActivityID string  `json:"labor_activity_id"`
	ActivityName    string  `json:"activity_name,omitempty"`
	Date            string  `json:"date"`
	Hours           float64 `json:"hours"`
	Notes           *string `json:"notes,omitempty"`
	Approved        bool    `json:"approved"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	ApprovedAt      *string `json:"approved_at,omitempty"`
}

func ToTimeEntryResponse(e TimeEntry) TimeEntryResponse {
	resp := TimeEntryResponse{
		ID:              e.ID,
		UserID:          e.UserID,
		UserName:        e.UserName,
		JobID:           e.JobID,
		JobCode:         e.JobCode,
		LaborActivityID: e.LaborActivityID,
		ActivityName:    e.ActivityName,
		Date:            e.Date.Format("2006-01-02"),
		Hours:           e.Hours,
		Notes:           e.Notes,
		Approved:        e.Approved,
		ApprovedBy:      e.ApprovedBy,
	}
	if e.ApprovedAt != nil {
		at := e.ApprovedAt.Format("2006-01-02 15:04:05")
		resp.ApprovedAt = &at
	}
	return resp
}

type WeekResponse struct {
	UserID     string              `json:"user_id"`
	JobID      string              `json:"job_id"`
	WeekStart  string              `json:"week_start"`
	Locked     bool                `json:"locked"`
	LockedBy   string              `json:"locked_by,omitempty"`
	LockedAt   string              `json:"locked_at,omitempty"`
	TotalHours float64             `json:"total_hours"`
	Entries    []TimeEntryResponse `json:"entries"`
}

type ApproveWeekResponse struct {
	UserID          string `json:"user_id"`
	JobID           string `json:"job_id"`
	WeekStart       string `json:"week_start"`
	ApprovedBy      string `json:"approved_by"`
	ApprovedAt      string `json:"approved_at"`
	EntriesApproved int    `json:"entries_approved"`
	Warning         string `json:"warning,omitempty"`
}

type EntryFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	JobID     *string `json:"job_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Approved  *bool   `json:"approved,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // date, user_name, job_code, hours
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *EntryFilter) Validate() error {
	var errs validator.ValidationErrors

	// Page validation
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	// Limit validation
	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 20 // Default limit
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 100",
		})
	}

	// Date validation
	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	// Sort validation
	if f.SortBy != "" {
		validSortFields := []string{"date", "user_name", "job_code", "hours"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: date, user_name, job_code, hours",
			})
		}
	} else {
		f.SortBy = "date" // Default sort
	}

	if f.SortOrder != "" {
		validSortOrders := []string{"asc", "desc"}
		if !validator.IsInSlice(strings.ToLower(f.SortOrder), validSortOrders) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_order",
				Message: "sort_order must be one of: asc, desc",
			})
		}
	} else {
		f.SortOrder = "desc" // Default descending (newest first)
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ListEntriesResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Showing    string              `json:"showing"`
	Entries    []TimeEntryResponse `json:"entries"`
}

package clocksession

import (
	"strings"
	"time"

	"github.com/sitecrew/labortrack-backend-go/internal/pkg/utils"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/validator"
)

type ClockInRequest struct {
	JobID           string   `json:"job_id"`
	LaborActivityID string   `json:"labor_activity_id"`
	Notes           *string  `json:"notes,omitempty"`
	Latitude        *float64 `json:"latitude,omitempty"`
	Longitude       *float64 `json:"longitude,omitempty"`
	Accuracy        *float64 `json:"accuracy,omitempty"`
	DeviceID        *string  `json:"device_id,omitempty"`
	UserAgent       string   `json:"-"` // From request headers
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.JobID) {
		errs = append(errs, validator.ValidationError{
			Field:   "job_id",
			Message: "job_id is required",
		})
	}
	if validator.IsEmpty(r.LaborActivityID) {
		errs = append(errs, validator.ValidationError{
			Field:   "labor_activity_id",
			Message: "labor_activity_id is required",
		})
	}

	// GPS is optional, but a half-provided fix is rejected
	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutRequest struct {
	Notes     *string  `json:"notes,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	DeviceID  *string  `json:"device_id,omitempty"`
	UserAgent string   `json:"-"` // From request headers
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if (r.Latitude == nil) != (r.Longitude == nil) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude and longitude must be provided together",
		})
	}
	if r.Latitude != nil && !validator.IsValidLatitude(*r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && !validator.IsValidLongitude(*r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SessionResponse struct {
	ID                 string   `json:"id"`
	UserID             string   `json:"user_id"`
	UserName           string   `json:"user_name,omitempty"`
	JobID              string   `json:"job_id"`
	JobCode            string   `json:"job_code,omitempty"`
	LaborActivityID    string   `json:"labor_activity_id"`
	ActivityName       string   `json:"activity_name,omitempty"`
	ClockIn            string   `json:"clock_in"`
	ClockOut           *string  `json:"clock_out,omitempty"`
	DurationHours      float64  `json:"duration_hours"`
	Notes              *string  `json:"notes,omitempty"`
	IsActive           bool     `json:"is_active"`
	ClockInLatitude    *float64 `json:"clock_in_latitude,omitempty"`
	ClockInLongitude   *float64 `json:"clock_in_longitude,omitempty"`
	ClockInDistanceMi  *float64 `json:"clock_in_distance_mi,omitempty"`
	ClockInTier        *string  `json:"clock_in_tier,omitempty"`
	ClockOutLatitude   *float64 `json:"clock_out_latitude,omitempty"`
	ClockOutLongitude  *float64 `json:"clock_out_longitude,omitempty"`
	ClockOutDistanceMi *float64 `json:"clock_out_distance_mi,omitempty"`
	ClockOutTier       *string  `json:"clock_out_tier,omitempty"`
}

// ToSessionResponse maps a session to its transport shape, annotating the
// stored GPS deviations with their compliance tiers.
func ToSessionResponse(s ClockSession, asOf time.Time) SessionResponse {
	resp := SessionResponse{
		ID:                 s.ID,
		UserID:             s.UserID,
		UserName:           s.UserName,
		JobID:              s.JobID,
		JobCode:            s.JobCode,
		LaborActivityID:    s.LaborActivityID,
		ActivityName:       s.ActivityName,
		ClockIn:            s.ClockIn.Format("2006-01-02 15:04:05"),
		DurationHours:      s.DurationHours(asOf),
		Notes:              s.Notes,
		IsActive:           s.IsActive,
		ClockInLatitude:    s.ClockInLatitude,
		ClockInLongitude:   s.ClockInLongitude,
		ClockInDistanceMi:  s.ClockInDistanceMi,
		ClockInTier:        tierOf(s.ClockInDistanceMi),
		ClockOutLatitude:   s.ClockOutLatitude,
		ClockOutLongitude:  s.ClockOutLongitude,
		ClockOutDistanceMi: s.ClockOutDistanceMi,
		ClockOutTier:       tierOf(s.ClockOutDistanceMi),
	}
	if s.ClockOut != nil {
		out := s.ClockOut.Format("2006-01-02 15:04:05")
		resp.ClockOut = &out
	}
	return resp
}

// ClockOutResponse carries the closed session plus the outcome of the derived
// time entry write. EntryCreated is false when the containing week was already
// approved; Warning explains the skip.
type ClockOutResponse struct {
	Session      SessionResponse `json:"session"`
	EntryCreated bool            `json:"entry_created"`
	EntryHours   *float64        `json:"entry_hours,omitempty"`
	Warning      string          `json:"warning,omitempty"`
}

type SessionStatusResponse struct {
	HasOpenSession bool             `json:"has_open_session"`
	OpenSession    *SessionResponse `json:"open_session,omitempty"`
	CanClockIn     bool             `json:"can_clock_in"`
	CanClockOut    bool             `json:"can_clock_out"`
	Message        string           `json:"message"`
}

type SessionFilter struct {
	UserID     *string `json:"user_id,omitempty"`
	JobID      *string `json:"job_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	ActiveOnly bool    `json:"active_only"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`

	// Sorting
	SortBy    string `json:"sort_by"`    // clock_in, user_name, job_code
	SortOrder string `json:"sort_order"` // asc, desc
}

func (f *SessionFilter) Validate() error {
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
		validSortFields := []string{"clock_in", "user_name", "job_code"}
		if !validator.IsInSlice(f.SortBy, validSortFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "sort_by",
				Message: "sort_by must be one of: clock_in, user_name, job_code",
			})
		}
	} else {
		f.SortBy = "clock_in" // Default sort
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

type ListSessionsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
	Showing    string            `json:"showing"`
	Sessions   []SessionResponse `json:"sessions"`
}

// tierOf classifies a stored distance for read-side annotation.
func tierOf(distanceMi *float64) *string {
	if distanceMi == nil {
		return nil
	}
	tier := string(utils.ClassifyDistance(*distanceMi))
	return &tier
}

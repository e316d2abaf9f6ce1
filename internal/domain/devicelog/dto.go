package devicelog

import (
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/validator"
)

type LogFilter struct {
	UserID    *string `json:"user_id,omitempty"`
	Action    *string `json:"action,omitempty"`
	StartDate *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   *string `json:"end_date,omitempty"`   // YYYY-MM-DD

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *LogFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Page == 0 {
		f.Page = 1 // Default page
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be a positive number",
		})
	}
	if f.Limit == 0 {
		f.Limit = 50 // Default limit
	}
	if f.Limit > 200 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must not exceed 200",
		})
	}

	if f.Action != nil && !validator.IsInSlice(*f.Action, []string{ActionClockIn, ActionClockOut}) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be one of: IN, OUT",
		})
	}

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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type DeviceLogResponse struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id"`
	UserName  string   `json:"user_name,omitempty"`
	SessionID *string  `json:"session_id,omitempty"`
	Action    string   `json:"action"`
	DeviceID  *string  `json:"device_id,omitempty"`
	UserAgent *string  `json:"user_agent,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
	CreatedAt string   `json:"created_at"`
}

func ToDeviceLogResponse(l DeviceLog) DeviceLogResponse {
	return DeviceLogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		UserName:  l.UserName,
		SessionID: l.SessionID,
		Action:    l.Action,
		DeviceID:  l.DeviceID,
		UserAgent: l.UserAgent,
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Accuracy:  l.Accuracy,
		CreatedAt: l.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}

type ListDeviceLogsResponse struct {
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
	TotalPages int                 `json:"total_pages"`
	Showing    string              `json:"showing"`
	Logs       []DeviceLogResponse `json:"logs"`
}

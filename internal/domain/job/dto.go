package job

import (
	"time"

	"github.com/sitecrew/labortrack-backend-go/internal/pkg/validator"
)

type CreateJobRequest struct {
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Status      string   `json:"status,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Address     *string  `json:"address,omitempty"`
	ForemanID   *string  `json:"foreman_id,omitempty"`
	TradeIDs    []string `json:"trade_ids,omitempty"`
}

func (r *CreateJobRequest) Validate() error {
	var errs validator.ValidationErrors

	// Code
	if validator.IsEmpty(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code is required",
		})
	} else if !validator.IsValidJobCode(r.Code) {
		errs = append(errs, validator.ValidationError{
			Field:   "code",
			Message: "code must be 2-20 characters of uppercase letters, digits, and hyphens",
		})
	}

	// Description
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}
	if len(r.Description) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not exceed 255 characters",
		})
	}

	// Status
	if r.Status != "" && !validator.IsInSlice(r.Status, []string{string(StatusActive), string(StatusComplete), string(StatusOnHold)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: active, complete, on_hold",
		})
	}

	// Coordinates come as a pair or not at all
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

type UpdateJobRequest struct {
	ID          string   `json:"-"` // From URL path
	Description *string  `json:"description,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Address     *string  `json:"address,omitempty"`
	ForemanID   *string  `json:"foreman_id,omitempty"`
}

func (r *UpdateJobRequest) Validate() error {
	var errs validator.ValidationErrors

	// ID
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	// Description
	if r.Description != nil && validator.IsEmpty(*r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description must not be empty",
		})
	}

	// Status
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{string(StatusActive), string(StatusComplete), string(StatusOnHold)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: active, complete, on_hold",
		})
	}

	// Coordinates
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

type AssignWorkersRequest struct {
	WorkerIDs []string `json:"worker_ids"`
}

func (r *AssignWorkersRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.WorkerIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "worker_ids",
			Message: "worker_ids must not be empty",
		})
	}
	for _, id := range r.WorkerIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "worker_ids",
				Message: "worker_ids must contain valid UUIDs",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type AssignTradesRequest struct {
	TradeIDs []string `json:"trade_ids"`
}

func (r *AssignTradesRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.TradeIDs) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "trade_ids",
			Message: "trade_ids must not be empty",
		})
	}
	for _, id := range r.TradeIDs {
		if !validator.IsValidUUID(id) {
			errs = append(errs, validator.ValidationError{
				Field:   "trade_ids",
				Message: "trade_ids must contain valid UUIDs",
			})
			break
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type JobFilter struct {
	Status    string
	ForemanID string
	Search    string
}

type JobResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Address     *string   `json:"address,omitempty"`
	ForemanID   *string   `json:"foreman_id,omitempty"`
	ForemanName string    `json:"foreman_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToJobResponse(j Job) JobResponse {
	return JobResponse{
		ID:          j.ID,
		Code:        j.Code,
		Description: j.Description,
		Status:      string(j.Status),
		Latitude:    j.Latitude,
		Longitude:   j.Longitude,
		Address:     j.Address,
		ForemanID:   j.ForemanID,
		ForemanName: j.ForemanName,
		CreatedAt:   j.CreatedAt,
	}
}

type CrewMemberResponse struct {
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	AssignedAt time.Time `json:"assigned_at"`
}

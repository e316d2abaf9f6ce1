package user

import (
	"time"

	"github.com/sitecrew/labortrack-backend-go/internal/pkg/validator"
)

type CreateWorkerRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	Role        string  `json:"role"`
	UsesClockIn bool    `json:"uses_clock_in"`
	BurdenRate  float64 `json:"burden_rate"`
}

func (r *CreateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}

	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}

	if validator.IsEmpty(r.Password) {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password is required",
		})
	} else if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	}

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	} else if !validator.IsInSlice(r.Role, []string{string(RoleWorker), string(RoleForeman), string(RoleAdmin)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: worker, foreman, admin",
		})
	}

	if r.BurdenRate < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "burden_rate",
			Message: "burden_rate must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateWorkerRequest struct {
	Name        *string  `json:"name,omitempty"`
	Email       *string  `json:"email,omitempty"`
	Password    *string  `json:"password,omitempty"`
	Role        *string  `json:"role,omitempty"`
	UsesClockIn *bool    `json:"uses_clock_in,omitempty"`
	BurdenRate  *float64 `json:"burden_rate,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.Password != nil && len(*r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters long",
		})
	}
	if r.Role != nil && !validator.IsInSlice(*r.Role, []string{string(RoleWorker), string(RoleForeman), string(RoleAdmin)}) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role must be one of: worker, foreman, admin",
		})
	}
	if r.BurdenRate != nil && *r.BurdenRate < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "burden_rate",
			Message: "burden_rate must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type WorkerFilter struct {
	Role     string
	IsActive *bool
	Search   string
}

type WorkerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	UsesClockIn bool      `json:"uses_clock_in"`
	BurdenRate  float64   `json:"burden_rate"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToWorkerResponse(u User) WorkerResponse {
	return WorkerResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		UsesClockIn: u.UsesClockIn,
		BurdenRate:  u.BurdenRate,
		IsActive:    u.IsActive,
		CreatedAt:   u.CreatedAt,
	}
}

func ToWorkerResponses(users []User) []WorkerResponse {
	responses := make([]WorkerResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToWorkerResponse(u))
	}
	return responses
}

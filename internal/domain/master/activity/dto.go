package activity

import (
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/validator"
)

// ActivityResponse represents the response structure for a labor activity.
type ActivityResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TradeID   string `json:"trade_id"`
	TradeName string `json:"trade_name,omitempty"`
	IsActive  bool   `json:"is_active"`
}

// CreateActivityRequest represents the request structure for creating a labor activity.
type CreateActivityRequest struct {
	Name    string `json:"name"`
	TradeID string `json:"trade_id"`
}

func (r *CreateActivityRequest) Validate() error {
	var errs validator.ValidationErrors

	// Name
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 100 characters",
		})
	}

	// TradeID
	if validator.IsEmpty(r.TradeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "trade_id",
			Message: "trade_id is required",
		})
	} else if !validator.IsValidUUID(r.TradeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "trade_id",
			Message: "trade_id must be a valid UUID",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateActivityRequest represents the request structure for updating a labor activity.
type UpdateActivityRequest struct {
	ID       string  `json:"id"`
	Name     *string `json:"name,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateActivityRequest) Validate() error {
	var errs validator.ValidationErrors

	// ID
	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	// Name
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not be empty",
			})
		}
		if len(*r.Name) > 100 {
			errs = append(errs, validator.ValidationError{
				Field:   "name",
				Message: "name must not exceed 100 characters",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

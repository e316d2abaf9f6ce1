package trade

import (
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/validator"
)

// TradeResponse represents the response structure for a trade.
type TradeResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateTradeRequest represents the request structure for creating a trade.
type CreateTradeRequest struct {
	Name string `json:"name"`
}

func (r *CreateTradeRequest) Validate() error {
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

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateTradeRequest represents the request structure for renaming a trade.
type UpdateTradeRequest struct {
	ID   string  `json:"id"`
	Name *string `json:"name,omitempty"`
}

func (r *UpdateTradeRequest) Validate() error {
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

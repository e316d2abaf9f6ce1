package activity

import "errors"

var (
	ErrActivityNotFound   = errors.New("labor activity not found")
	ErrActivityNameExists = errors.New("labor activity with this name already exists for this trade")
	ErrActivityInactive   = errors.New("labor activity is inactive")
)

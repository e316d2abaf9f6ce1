package trade

import "errors"

var (
	ErrTradeNotFound   = errors.New("trade not found")
	ErrTradeNameExists = errors.New("trade with this name already exists")
)

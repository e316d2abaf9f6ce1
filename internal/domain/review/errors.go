package review

import "errors"

var (
	ErrReviewNotFound = errors.New("reviewed time row not found")
)

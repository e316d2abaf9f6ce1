package job

import "errors"

var (
	ErrJobNotFound        = errors.New("job not found")
	ErrJobCodeExists      = errors.New("job with this code already exists")
	ErrJobNotActive       = errors.New("job is not active")
	ErrJobHasTimeRecords  = errors.New("job has time records; only status and foreman may change")
	ErrWorkerNotAssigned  = errors.New("worker is not assigned to this job")
	ErrTradeNotAssigned   = errors.New("trade is not assigned to this job")
	ErrActivityNotInScope = errors.New("labor activity's trade is not assigned to this job")
)

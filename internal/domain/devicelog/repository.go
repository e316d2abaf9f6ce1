package devicelog

import (
	"context"
	"time"
)

type DeviceLogRepository interface {
	Create(ctx context.Context, log DeviceLog) (DeviceLog, error)
	List(ctx context.Context, filter LogFilter) ([]DeviceLog, int64, error)
	// DeleteOlderThan removes rows created before the cutoff and reports how many.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

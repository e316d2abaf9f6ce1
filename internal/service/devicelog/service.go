package devicelog

import (
	"context"
	"fmt"
	"math"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/devicelog"
)

// DeviceLogService exposes the clock-event audit trail to admins. Rows are
// written by the clock session service; this side only reads.
type DeviceLogService interface {
	ListLogs(ctx context.Context, filter devicelog.LogFilter) (devicelog.ListDeviceLogsResponse, error)
}

type deviceLogServiceImpl struct {
	logRepo devicelog.DeviceLogRepository
}

func NewDeviceLogService(logRepo devicelog.DeviceLogRepository) DeviceLogService {
	return &deviceLogServiceImpl{
		logRepo: logRepo,
	}
}

// ListLogs implements DeviceLogService.
func (s *deviceLogServiceImpl) ListLogs(ctx context.Context, filter devicelog.LogFilter) (devicelog.ListDeviceLogsResponse, error) {
	// Validate request
	if err := filter.Validate(); err != nil {
		return devicelog.ListDeviceLogsResponse{}, err
	}

	logs, total, err := s.logRepo.List(ctx, filter)
	if err != nil {
		return devicelog.ListDeviceLogsResponse{}, fmt.Errorf("failed to list device logs: %w", err)
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", (filter.Page-1)*filter.Limit+1, min(filter.Page*filter.Limit, int(total)), total)
	if total == 0 {
		showing = "0 of 0"
	}

	responses := make([]devicelog.DeviceLogResponse, 0, len(logs))
	for _, entry := range logs {
		responses = append(responses, devicelog.ToDeviceLogResponse(entry))
	}

	return devicelog.ListDeviceLogsResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Logs:       responses,
	}, nil
}

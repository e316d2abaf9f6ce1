package http

import (
	"net/http"
	"strconv"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/devicelog"
	"github.com/sitecrew/labortrack-backend-go/internal/handler/http/response"
	devicelogservice "github.com/sitecrew/labortrack-backend-go/internal/service/devicelog"
)

type DeviceLogHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type deviceLogHandlerImpl struct {
	deviceLogService devicelogservice.DeviceLogService
}

func NewDeviceLogHandler(deviceLogService devicelogservice.DeviceLogService) DeviceLogHandler {
	return &deviceLogHandlerImpl{
		deviceLogService: deviceLogService,
	}
}

// List implements DeviceLogHandler.
func (h *deviceLogHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := devicelog.LogFilter{}

	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if action := r.URL.Query().Get("action"); action != "" {
		filter.Action = &action
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}

	// Pagination
	if p := r.URL.Query().Get("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			filter.Page = pageNum
		}
	}
	if l := r.URL.Query().Get("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			filter.Limit = limitNum
		}
	}

	results, err := h.deviceLogService.ListLogs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

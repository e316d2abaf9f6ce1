package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/clocksession"
	"github.com/sitecrew/labortrack-backend-go/internal/handler/http/response"
)

type ClockSessionHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	GetStatus(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type clockSessionHandlerImpl struct {
	sessionService clocksession.ClockSessionService
}

func NewClockSessionHandler(sessionService clocksession.ClockSessionService) ClockSessionHandler {
	return &clockSessionHandlerImpl{
		sessionService: sessionService,
	}
}

// ClockIn implements ClockSessionHandler.
func (h *clockSessionHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req clocksession.ClockInRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserAgent = r.UserAgent()

	result, err := h.sessionService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", result)
}

// ClockOut implements ClockSessionHandler.
func (h *clockSessionHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req clocksession.ClockOutRequest

	// An empty body is a plain clock-out with no notes or GPS
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.UserAgent = r.UserAgent()

	result, err := h.sessionService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.Warning != "" {
		response.SuccessWithMessage(w, result.Warning, result)
		return
	}
	response.Success(w, result)
}

// GetStatus implements ClockSessionHandler.
func (h *clockSessionHandlerImpl) GetStatus(w http.ResponseWriter, r *http.Request) {
	result, err := h.sessionService.GetStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements ClockSessionHandler.
func (h *clockSessionHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := clocksession.SessionFilter{}

	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if jobID := r.URL.Query().Get("job_id"); jobID != "" {
		filter.JobID = &jobID
	}
	if startDate := r.URL.Query().Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := r.URL.Query().Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	if active := r.URL.Query().Get("active_only"); active == "true" {
		filter.ActiveOnly = true
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

	// Sorting
	filter.SortBy = r.URL.Query().Get("sort_by")
	filter.SortOrder = r.URL.Query().Get("sort_order")

	results, err := h.sessionService.ListSessions(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

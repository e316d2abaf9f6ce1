package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/jwtauth/v5"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/timesheet"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/user"
	"github.com/sitecrew/labortrack-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	UpsertDay(w http.ResponseWriter, r *http.Request)
	SubmitWeek(w http.ResponseWriter, r *http.Request)
	GetWeek(w http.ResponseWriter, r *http.Request)
	ApproveWeek(w http.ResponseWriter, r *http.Request)
	ListEntries(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

// UpsertDay implements TimesheetHandler.
func (h *timesheetHandlerImpl) UpsertDay(w http.ResponseWriter, r *http.Request) {
	var req timesheet.UpsertDayRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Submitting on behalf of another worker is a foreman/admin action
	if !allowOnBehalf(r, req.UserID) {
		response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", user.PermissionTimesheetSubmitCrew))
		return
	}

	results, err := h.timesheetService.UpsertDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// SubmitWeek implements TimesheetHandler.
func (h *timesheetHandlerImpl) SubmitWeek(w http.ResponseWriter, r *http.Request) {
	var req timesheet.SubmitWeekRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Submitting on behalf of another worker is a foreman/admin action
	if !allowOnBehalf(r, req.UserID) {
		response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", user.PermissionTimesheetSubmitCrew))
		return
	}

	result, err := h.timesheetService.SubmitWeek(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetWeek implements TimesheetHandler.
func (h *timesheetHandlerImpl) GetWeek(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	jobID := r.URL.Query().Get("job_id")
	weekStart := r.URL.Query().Get("week_start")

	if jobID == "" || weekStart == "" {
		response.BadRequest(w, "job_id and week_start are required", nil)
		return
	}

	// Reading another worker's week needs the view-all permission
	if userID != "" && userID != claimsUserID(r) {
		if !user.HasPermission(claimsRole(r), user.PermissionTimesheetViewAll) {
			response.Forbidden(w, fmt.Sprintf("Insufficient permissions: required '%s'", user.PermissionTimesheetViewAll))
			return
		}
	}

	result, err := h.timesheetService.GetWeek(r.Context(), userID, jobID, weekStart)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ApproveWeek implements TimesheetHandler.
func (h *timesheetHandlerImpl) ApproveWeek(w http.ResponseWriter, r *http.Request) {
	var req timesheet.ApproveWeekRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timesheetService.ApproveWeek(r.Context(), req)
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

// ListEntries implements TimesheetHandler.
func (h *timesheetHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	filter := timesheet.EntryFilter{}

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
	if approved := r.URL.Query().Get("approved"); approved != "" {
		val := approved == "true"
		filter.Approved = &val
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

	results, err := h.timesheetService.ListEntries(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// allowOnBehalf reports whether the caller may act for the requested worker:
// always for themselves, otherwise only with the crew-submission permission.
func allowOnBehalf(r *http.Request, requestedUserID string) bool {
	if requestedUserID == "" || requestedUserID == claimsUserID(r) {
		return true
	}
	return user.HasPermission(claimsRole(r), user.PermissionTimesheetSubmitCrew)
}

func claimsUserID(r *http.Request) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	id, _ := claims["user_id"].(string)
	return id
}

func claimsRole(r *http.Request) user.Role {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	roleStr, _ := claims["role"].(string)
	return user.Role(roleStr)
}

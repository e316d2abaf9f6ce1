package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/master/activity"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/master/trade"
	"github.com/sitecrew/labortrack-backend-go/internal/handler/http/response"
	"github.com/sitecrew/labortrack-backend-go/internal/service/master"
)

type MasterHandler interface {
	// Trade handlers
	CreateTrade(w http.ResponseWriter, r *http.Request)
	GetTrade(w http.ResponseWriter, r *http.Request)
	ListTrades(w http.ResponseWriter, r *http.Request)
	UpdateTrade(w http.ResponseWriter, r *http.Request)
	ListTradeActivities(w http.ResponseWriter, r *http.Request)

	// Labor activity handlers
	CreateActivity(w http.ResponseWriter, r *http.Request)
	GetActivity(w http.ResponseWriter, r *http.Request)
	ListActivities(w http.ResponseWriter, r *http.Request)
	UpdateActivity(w http.ResponseWriter, r *http.Request)
	ListJobActivities(w http.ResponseWriter, r *http.Request)
}

type masterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &masterHandlerImpl{
		masterService: masterService,
	}
}

// ==================== TRADE HANDLERS ====================

func (h *masterHandlerImpl) CreateTrade(w http.ResponseWriter, r *http.Request) {
	var req trade.CreateTradeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateTrade(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Trade created successfully", result)
}

func (h *masterHandlerImpl) GetTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.masterService.GetTrade(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListTrades(w http.ResponseWriter, r *http.Request) {
	results, err := h.masterService.ListTrades(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *masterHandlerImpl) UpdateTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req trade.UpdateTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := h.masterService.UpdateTrade(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Trade updated successfully"})
}

func (h *masterHandlerImpl) ListTradeActivities(w http.ResponseWriter, r *http.Request) {
	tradeID := chi.URLParam(r, "id")
	activeOnly := r.URL.Query().Get("active_only") == "true"

	results, err := h.masterService.ListActivitiesByTrade(r.Context(), tradeID, activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ==================== LABOR ACTIVITY HANDLERS ====================

func (h *masterHandlerImpl) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var req activity.CreateActivityRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.masterService.CreateActivity(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Labor activity created successfully", result)
}

func (h *masterHandlerImpl) GetActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.masterService.GetActivity(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *masterHandlerImpl) ListActivities(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	results, err := h.masterService.ListActivities(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *masterHandlerImpl) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req activity.UpdateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	if err := h.masterService.UpdateActivity(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Labor activity updated successfully"})
}

func (h *masterHandlerImpl) ListJobActivities(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	results, err := h.masterService.ListActivitiesForJob(r.Context(), jobID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

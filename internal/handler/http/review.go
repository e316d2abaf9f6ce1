package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/review"
	"github.com/sitecrew/labortrack-backend-go/internal/handler/http/response"
	reviewservice "github.com/sitecrew/labortrack-backend-go/internal/service/review"
)

type ReviewHandler interface {
	SaveDraft(w http.ResponseWriter, r *http.Request)
	GetEffectiveTime(w http.ResponseWriter, r *http.Request)
	Finalize(w http.ResponseWriter, r *http.Request)
	DeleteDraft(w http.ResponseWriter, r *http.Request)
}

type reviewHandlerImpl struct {
	reviewService reviewservice.ReviewService
}

func NewReviewHandler(reviewService reviewservice.ReviewService) ReviewHandler {
	return &reviewHandlerImpl{
		reviewService: reviewService,
	}
}

// SaveDraft implements ReviewHandler.
func (h *reviewHandlerImpl) SaveDraft(w http.ResponseWriter, r *http.Request) {
	var req review.SaveDraftRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	results, err := h.reviewService.SaveDraft(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// GetEffectiveTime implements ReviewHandler.
func (h *reviewHandlerImpl) GetEffectiveTime(w http.ResponseWriter, r *http.Request) {
	filter := review.EffectiveTimeFilter{
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	if userID := r.URL.Query().Get("user_id"); userID != "" {
		filter.UserID = &userID
	}
	if jobID := r.URL.Query().Get("job_id"); jobID != "" {
		filter.JobID = &jobID
	}
	if reviewedOnly := r.URL.Query().Get("reviewed_only"); reviewedOnly == "true" {
		filter.ReviewedOnly = true
	}

	results, err := h.reviewService.GetEffectiveTime(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Finalize implements ReviewHandler.
func (h *reviewHandlerImpl) Finalize(w http.ResponseWriter, r *http.Request) {
	var req review.FinalizeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.reviewService.Finalize(r.Context(), req)
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

// DeleteDraft implements ReviewHandler.
func (h *reviewHandlerImpl) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.reviewService.DeleteDraft(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Draft deleted"})
}

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/job"
	"github.com/sitecrew/labortrack-backend-go/internal/handler/http/response"
)

type JobHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)

	AssignWorkers(w http.ResponseWriter, r *http.Request)
	RemoveWorker(w http.ResponseWriter, r *http.Request)
	ListCrew(w http.ResponseWriter, r *http.Request)
	AssignTrades(w http.ResponseWriter, r *http.Request)
}

type jobHandlerImpl struct {
	jobService job.JobService
}

func NewJobHandler(jobService job.JobService) JobHandler {
	return &jobHandlerImpl{
		jobService: jobService,
	}
}

// Create implements JobHandler.
func (h *jobHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req job.CreateJobRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.jobService.CreateJob(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Job created successfully", result)
}

// Get implements JobHandler.
func (h *jobHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.jobService.GetJob(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements JobHandler.
func (h *jobHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := job.JobFilter{
		Status:    r.URL.Query().Get("status"),
		ForemanID: r.URL.Query().Get("foreman_id"),
		Search:    r.URL.Query().Get("search"),
	}

	results, err := h.jobService.ListJobs(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// ListMy implements JobHandler.
func (h *jobHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	results, err := h.jobService.ListMyJobs(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// Update implements JobHandler.
func (h *jobHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req job.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = id

	result, err := h.jobService.UpdateJob(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// AssignWorkers implements JobHandler.
func (h *jobHandlerImpl) AssignWorkers(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	var req job.AssignWorkersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.jobService.AssignWorkers(r.Context(), jobID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Workers assigned"})
}

// RemoveWorker implements JobHandler.
func (h *jobHandlerImpl) RemoveWorker(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")
	workerID := chi.URLParam(r, "workerId")

	if err := h.jobService.RemoveWorker(r.Context(), jobID, workerID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Worker removed from job"})
}

// ListCrew implements JobHandler.
func (h *jobHandlerImpl) ListCrew(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	results, err := h.jobService.ListCrew(r.Context(), jobID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

// AssignTrades implements JobHandler.
func (h *jobHandlerImpl) AssignTrades(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "id")

	var req job.AssignTradesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := h.jobService.AssignTrades(r.Context(), jobID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, map[string]string{"message": "Trades assigned"})
}

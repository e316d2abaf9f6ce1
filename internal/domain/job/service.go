package job

import "context"

type JobService interface {
	CreateJob(ctx context.Context, req CreateJobRequest) (JobResponse, error)
	UpdateJob(ctx context.Context, req UpdateJobRequest) (JobResponse, error)
	GetJob(ctx context.Context, id string) (JobResponse, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]JobResponse, error)
	// ListMyJobs returns the active jobs the authenticated worker is assigned to.
	ListMyJobs(ctx context.Context) ([]JobResponse, error)

	AssignWorkers(ctx context.Context, jobID string, req AssignWorkersRequest) error
	RemoveWorker(ctx context.Context, jobID, userID string) error
	ListCrew(ctx context.Context, jobID string) ([]CrewMemberResponse, error)
	AssignTrades(ctx context.Context, jobID string, req AssignTradesRequest) error
}

package job

import "context"

type JobRepository interface {
	Create(ctx context.Context, j Job) (Job, error)
	GetByID(ctx context.Context, id string) (Job, error)
	GetByCode(ctx context.Context, code string) (Job, error)
	List(ctx context.Context, filter JobFilter) ([]Job, error)
	Update(ctx context.Context, req UpdateJobRequest) error
	// HasTimeRecords reports whether any clock session or time entry references
	// the job. Jobs with time records accept only status and foreman changes.
	HasTimeRecords(ctx context.Context, id string) (bool, error)
}

type JobAssignmentRepository interface {
	AssignWorker(ctx context.Context, jobID, userID string) error
	RemoveWorker(ctx context.Context, jobID, userID string) error
	IsWorkerAssigned(ctx context.Context, jobID, userID string) (bool, error)
	ListCrew(ctx context.Context, jobID string) ([]CrewMember, error)
	ListJobsForWorker(ctx context.Context, userID string) ([]Job, error)

	AssignTrade(ctx context.Context, jobID, tradeID string) error
	RemoveTrade(ctx context.Context, jobID, tradeID string) error
	ListTradeIDs(ctx context.Context, jobID string) ([]string, error)
	// IsActivityInScope reports whether the activity's trade is assigned to the job.
	IsActivityInScope(ctx context.Context, jobID, activityID string) (bool, error)
}

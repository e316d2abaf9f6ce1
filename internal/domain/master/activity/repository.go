package activity

import "context"

type ActivityRepository interface {
	Create(ctx context.Context, a LaborActivity) (LaborActivity, error)
	GetByID(ctx context.Context, id string) (LaborActivity, error)
	List(ctx context.Context, activeOnly bool) ([]LaborActivity, error)
	ListByTrade(ctx context.Context, tradeID string, activeOnly bool) ([]LaborActivity, error)
	// ListForJob returns active activities whose trade is assigned to the job.
	ListForJob(ctx context.Context, jobID string) ([]LaborActivity, error)
	Update(ctx context.Context, req UpdateActivityRequest) error
}

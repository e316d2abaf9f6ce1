package review

import "context"

type ReviewedTimeRepository interface {
	// Upsert writes a draft row, replacing any existing row for the same
	// (worker, job, activity, work_date).
	Upsert(ctx context.Context, rt ForemanReviewedTime) (ForemanReviewedTime, error)
	GetByID(ctx context.Context, id string) (ForemanReviewedTime, error)
	Query(ctx context.Context, filter RangeFilter) ([]ForemanReviewedTime, error)
	Delete(ctx context.Context, id string) error
}

package user

import (
	"context"
)

type UserService interface {
	CreateWorker(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	UpdateWorker(ctx context.Context, id string, req UpdateWorkerRequest) (WorkerResponse, error)
	DeactivateWorker(ctx context.Context, id string) error
	GetWorker(ctx context.Context, id string) (WorkerResponse, error)
	ListWorkers(ctx context.Context, filter WorkerFilter) ([]WorkerResponse, error)
	GetProfile(ctx context.Context) (WorkerResponse, error)
}

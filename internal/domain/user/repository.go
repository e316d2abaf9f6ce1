package user

import (
	"context"
)

type UserRepository interface {
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	List(ctx context.Context, filter WorkerFilter) ([]User, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, updated User) (User, error)
	SetActive(ctx context.Context, id string, active bool) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

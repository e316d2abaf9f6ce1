package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
}

func (s *UserServiceImpl) hashPassword(password string) (string, error) {
	if password == "" {
		return "", nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	hashed := string(hash)
	return hashed, nil
}

// CreateWorker implements user.UserService.
func (s *UserServiceImpl) CreateWorker(ctx context.Context, req user.CreateWorkerRequest) (user.WorkerResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return user.WorkerResponse{}, err
	}

	exists, err := s.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return user.WorkerResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return user.WorkerResponse{}, user.ErrEmailExists
	}

	// Hash the password before storing
	hashedPassword, err := s.hashPassword(req.Password)
	if err != nil {
		return user.WorkerResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: &hashedPassword,
		Role:         user.Role(req.Role),
		UsesClockIn:  req.UsesClockIn,
		BurdenRate:   req.BurdenRate,
		IsActive:     true,
	}

	created, err := s.UserRepository.Create(ctx, newUser)
	if err != nil {
		// The email check above races with concurrent creates; the unique
		// constraint is the backstop
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return user.WorkerResponse{}, user.ErrEmailExists
			}
		}
		return user.WorkerResponse{}, fmt.Errorf("failed to create worker: %w", err)
	}

	return user.ToWorkerResponse(created), nil
}

// UpdateWorker implements user.UserService.
func (s *UserServiceImpl) UpdateWorker(ctx context.Context, id string, req user.UpdateWorkerRequest) (user.WorkerResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return user.WorkerResponse{}, err
	}

	existing, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.WorkerResponse{}, err
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Email != nil && *req.Email != existing.Email {
		exists, err := s.UserRepository.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return user.WorkerResponse{}, fmt.Errorf("failed to check email: %w", err)
		}
		if exists {
			return user.WorkerResponse{}, user.ErrEmailExists
		}
		existing.Email = *req.Email
	}
	if req.Password != nil {
		hashedPassword, err := s.hashPassword(*req.Password)
		if err != nil {
			return user.WorkerResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		existing.PasswordHash = &hashedPassword
	}
	if req.Role != nil {
		existing.Role = user.Role(*req.Role)
	}
	if req.UsesClockIn != nil {
		existing.UsesClockIn = *req.UsesClockIn
	}
	if req.BurdenRate != nil {
		existing.BurdenRate = *req.BurdenRate
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}

	updated, err := s.UserRepository.Update(ctx, existing)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return user.WorkerResponse{}, user.ErrEmailExists
			}
		}
		return user.WorkerResponse{}, fmt.Errorf("failed to update worker: %w", err)
	}

	return user.ToWorkerResponse(updated), nil
}

// DeactivateWorker implements user.UserService.
func (s *UserServiceImpl) DeactivateWorker(ctx context.Context, id string) error {
	if err := s.UserRepository.SetActive(ctx, id, false); err != nil {
		return err
	}
	return nil
}

// GetWorker implements user.UserService.
func (s *UserServiceImpl) GetWorker(ctx context.Context, id string) (user.WorkerResponse, error) {
	entity, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		return user.WorkerResponse{}, err
	}

	return user.ToWorkerResponse(entity), nil
}

// ListWorkers implements user.UserService.
func (s *UserServiceImpl) ListWorkers(ctx context.Context, filter user.WorkerFilter) ([]user.WorkerResponse, error) {
	entities, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return user.ToWorkerResponses(entities), nil
}

// GetProfile implements user.UserService.
func (s *UserServiceImpl) GetProfile(ctx context.Context) (user.WorkerResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return user.WorkerResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return user.WorkerResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	entity, err := s.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return user.WorkerResponse{}, err
	}

	return user.ToWorkerResponse(entity), nil
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
	}
}

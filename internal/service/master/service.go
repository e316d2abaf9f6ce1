package master

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/master/activity"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/master/trade"
	"github.com/sitecrew/labortrack-backend-go/internal/fixtures"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
	"github.com/sitecrew/labortrack-backend-go/internal/repository/postgresql"
)

type MasterService interface {
	// Trade operations
	CreateTrade(ctx context.Context, req trade.CreateTradeRequest) (trade.TradeResponse, error)
	GetTrade(ctx context.Context, id string) (trade.TradeResponse, error)
	ListTrades(ctx context.Context) ([]trade.TradeResponse, error)
	UpdateTrade(ctx context.Context, req trade.UpdateTradeRequest) error

	// Labor activity operations
	CreateActivity(ctx context.Context, req activity.CreateActivityRequest) (activity.ActivityResponse, error)
	GetActivity(ctx context.Context, id string) (activity.ActivityResponse, error)
	ListActivities(ctx context.Context, activeOnly bool) ([]activity.ActivityResponse, error)
	ListActivitiesByTrade(ctx context.Context, tradeID string, activeOnly bool) ([]activity.ActivityResponse, error)
	ListActivitiesForJob(ctx context.Context, jobID string) ([]activity.ActivityResponse, error)
	UpdateActivity(ctx context.Context, req activity.UpdateActivityRequest) error

	// EnsureDefaultCatalog seeds the starter trades and labor activities when
	// the catalog is empty. Safe to call on every startup.
	EnsureDefaultCatalog(ctx context.Context) error
}

type masterServiceImpl struct {
	db           *database.DB
	tradeRepo    trade.TradeRepository
	activityRepo activity.ActivityRepository
}

func NewMasterService(
	db *database.DB,
	tradeRepo trade.TradeRepository,
	activityRepo activity.ActivityRepository,
) MasterService {
	return &masterServiceImpl{
		db:           db,
		tradeRepo:    tradeRepo,
		activityRepo: activityRepo,
	}
}

// ==================== TRADE OPERATIONS ====================

func (s *masterServiceImpl) CreateTrade(ctx context.Context, req trade.CreateTradeRequest) (trade.TradeResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return trade.TradeResponse{}, err
	}

	created, err := s.tradeRepo.Create(ctx, trade.Trade{Name: req.Name})
	if err != nil {
		// Check for duplicate name (unique constraint violation)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return trade.TradeResponse{}, trade.ErrTradeNameExists
			}
		}
		return trade.TradeResponse{}, fmt.Errorf("failed to create trade: %w", err)
	}

	return trade.TradeResponse{
		ID:   created.ID,
		Name: created.Name,
	}, nil
}

func (s *masterServiceImpl) GetTrade(ctx context.Context, id string) (trade.TradeResponse, error) {
	entity, err := s.tradeRepo.GetByID(ctx, id)
	if err != nil {
		return trade.TradeResponse{}, err
	}

	return trade.TradeResponse{
		ID:   entity.ID,
		Name: entity.Name,
	}, nil
}

func (s *masterServiceImpl) ListTrades(ctx context.Context) ([]trade.TradeResponse, error) {
	entities, err := s.tradeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]trade.TradeResponse, 0, len(entities))
	for _, entity := range entities {
		responses = append(responses, trade.TradeResponse{
			ID:   entity.ID,
			Name: entity.Name,
		})
	}

	return responses, nil
}

func (s *masterServiceImpl) UpdateTrade(ctx context.Context, req trade.UpdateTradeRequest) error {
	// Validate request
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.tradeRepo.Update(ctx, req); err != nil {
		if errors.Is(err, trade.ErrTradeNotFound) {
			return err
		}
		// Check for duplicate name (unique constraint violation)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return trade.ErrTradeNameExists
			}
		}
		return fmt.Errorf("failed to update trade: %w", err)
	}

	return nil
}

// ==================== LABOR ACTIVITY OPERATIONS ====================

func (s *masterServiceImpl) CreateActivity(ctx context.Context, req activity.CreateActivityRequest) (activity.ActivityResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return activity.ActivityResponse{}, err
	}

	// The parent trade must exist
	parent, err := s.tradeRepo.GetByID(ctx, req.TradeID)
	if err != nil {
		return activity.ActivityResponse{}, err
	}

	created, err := s.activityRepo.Create(ctx, activity.LaborActivity{
		Name:     req.Name,
		TradeID:  parent.ID,
		IsActive: true,
	})
	if err != nil {
		// Check for duplicate name within the trade (unique constraint violation)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return activity.ActivityResponse{}, activity.ErrActivityNameExists
			}
		}
		return activity.ActivityResponse{}, fmt.Errorf("failed to create labor activity: %w", err)
	}

	return activity.ActivityResponse{
		ID:        created.ID,
		Name:      created.Name,
		TradeID:   created.TradeID,
		TradeName: parent.Name,
		IsActive:  created.IsActive,
	}, nil
}

func (s *masterServiceImpl) GetActivity(ctx context.Context, id string) (activity.ActivityResponse, error) {
	entity, err := s.activityRepo.GetByID(ctx, id)
	if err != nil {
		return activity.ActivityResponse{}, err
	}

	return activity.ActivityResponse{
		ID:        entity.ID,
		Name:      entity.Name,
		TradeID:   entity.TradeID,
		TradeName: entity.TradeName,
		IsActive:  entity.IsActive,
	}, nil
}

func (s *masterServiceImpl) ListActivities(ctx context.Context, activeOnly bool) ([]activity.ActivityResponse, error) {
	entities, err := s.activityRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]activity.ActivityResponse, 0, len(entities))
	for _, entity := range entities {
		responses = append(responses, activity.ActivityResponse{
			ID:        entity.ID,
			Name:      entity.Name,
			TradeID:   entity.TradeID,
			TradeName: entity.TradeName,
			IsActive:  entity.IsActive,
		})
	}

	return responses, nil
}

func (s *masterServiceImpl) ListActivitiesByTrade(ctx context.Context, tradeID string, activeOnly bool) ([]activity.ActivityResponse, error) {
	// The trade must exist so a bad ID reads as not found, not an empty list
	if _, err := s.tradeRepo.GetByID(ctx, tradeID); err != nil {
		return nil, err
	}

	entities, err := s.activityRepo.ListByTrade(ctx, tradeID, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]activity.ActivityResponse, 0, len(entities))
	for _, entity := range entities {
		responses = append(responses, activity.ActivityResponse{
			ID:        entity.ID,
			Name:      entity.Name,
			TradeID:   entity.TradeID,
			TradeName: entity.TradeName,
			IsActive:  entity.IsActive,
		})
	}

	return responses, nil
}

func (s *masterServiceImpl) ListActivitiesForJob(ctx context.Context, jobID string) ([]activity.ActivityResponse, error) {
	entities, err := s.activityRepo.ListForJob(ctx, jobID)
	if err != nil {
		return nil, err
	}

	responses := make([]activity.ActivityResponse, 0, len(entities))
	for _, entity := range entities {
		responses = append(responses, activity.ActivityResponse{
			ID:        entity.ID,
			Name:      entity.Name,
			TradeID:   entity.TradeID,
			TradeName: entity.TradeName,
			IsActive:  entity.IsActive,
		})
	}

	return responses, nil
}

func (s *masterServiceImpl) UpdateActivity(ctx context.Context, req activity.UpdateActivityRequest) error {
	// Validate request
	if err := req.Validate(); err != nil {
		return err
	}

	if err := s.activityRepo.Update(ctx, req); err != nil {
		if errors.Is(err, activity.ErrActivityNotFound) {
			return err
		}
		// Check for duplicate name within the trade (unique constraint violation)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return activity.ErrActivityNameExists
			}
		}
		return fmt.Errorf("failed to update labor activity: %w", err)
	}

	return nil
}

// ==================== CATALOG SEEDING ====================

// EnsureDefaultCatalog implements MasterService.
func (s *masterServiceImpl) EnsureDefaultCatalog(ctx context.Context) error {
	count, err := s.tradeRepo.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count trades: %w", err)
	}
	if count > 0 {
		return nil
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		activitiesByTrade := fixtures.GetDefaultActivities()
		for _, t := range fixtures.GetDefaultTrades() {
			createdTrade, err := s.tradeRepo.Create(txCtx, t)
			if err != nil {
				return fmt.Errorf("failed to seed trade %s: %w", t.Name, err)
			}

			for _, a := range activitiesByTrade[createdTrade.Name] {
				a.TradeID = createdTrade.ID
				if _, err := s.activityRepo.Create(txCtx, a); err != nil {
					return fmt.Errorf("failed to seed labor activity %s: %w", a.Name, err)
				}
			}

			slog.Info("Seeded default trade", "trade", createdTrade.Name, "activity_count", len(activitiesByTrade[createdTrade.Name]))
		}

		return nil
	})
	if err != nil {
		return err
	}

	return nil
}

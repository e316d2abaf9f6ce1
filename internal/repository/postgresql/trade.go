package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/master/trade"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
)

type tradeRepositoryImpl struct {
	db *database.DB
}

// Create implements trade.TradeRepository.
func (r *tradeRepositoryImpl) Create(ctx context.Context, t trade.Trade) (trade.Trade, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO trades (name)
		VALUES ($1)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, t.Name).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return trade.Trade{}, fmt.Errorf("failed to create trade: %w", err)
	}

	return t, nil
}

// GetByID implements trade.TradeRepository.
func (r *tradeRepositoryImpl) GetByID(ctx context.Context, id string) (trade.Trade, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at FROM trades WHERE id = $1`

	var t trade.Trade
	err := q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return trade.Trade{}, trade.ErrTradeNotFound
		}
		return trade.Trade{}, fmt.Errorf("failed to get trade by ID: %w", err)
	}

	return t, nil
}

// GetByName implements trade.TradeRepository.
func (r *tradeRepositoryImpl) GetByName(ctx context.Context, name string) (trade.Trade, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at FROM trades WHERE name = $1`

	var t trade.Trade
	err := q.QueryRow(ctx, query, name).Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return trade.Trade{}, trade.ErrTradeNotFound
		}
		return trade.Trade{}, fmt.Errorf("failed to get trade by name: %w", err)
	}

	return t, nil
}

// List implements trade.TradeRepository.
func (r *tradeRepositoryImpl) List(ctx context.Context) ([]trade.Trade, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, created_at, updated_at FROM trades ORDER BY name ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	defer rows.Close()

	var trades []trade.Trade
	for rows.Next() {
		var t trade.Trade
		if err := rows.Scan(&t.ID, &t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, t)
	}

	return trades, nil
}

// Update implements trade.TradeRepository.
func (r *tradeRepositoryImpl) Update(ctx context.Context, req trade.UpdateTradeRequest) error {
	q := GetQuerier(ctx, r.db)

	if req.Name == nil {
		return nil
	}

	query := `UPDATE trades SET name = $1, updated_at = $2 WHERE id = $3 RETURNING id`

	var updatedID string
	if err := q.QueryRow(ctx, query, *req.Name, time.Now(), req.ID).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return trade.ErrTradeNotFound
		}
		return fmt.Errorf("failed to update trade: %w", err)
	}

	return nil
}

// Count implements trade.TradeRepository.
func (r *tradeRepositoryImpl) Count(ctx context.Context) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM trades`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count trades: %w", err)
	}

	return count, nil
}

func NewTradeRepository(db *database.DB) trade.TradeRepository {
	return &tradeRepositoryImpl{db: db}
}

package trade

import "context"

type TradeRepository interface {
	Create(ctx context.Context, t Trade) (Trade, error)
	GetByID(ctx context.Context, id string) (Trade, error)
	GetByName(ctx context.Context, name string) (Trade, error)
	List(ctx context.Context) ([]Trade, error)
	Update(ctx context.Context, req UpdateTradeRequest) error
	Count(ctx context.Context) (int, error)
}

package activity

import "time"

type LaborActivity struct {
	ID        string
	Name      string
	TradeID   string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// TradeName is populated on joined reads only.
	TradeName string
}

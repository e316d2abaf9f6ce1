package trade

import "time"

type Trade struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

package fixtures

import (
	"github.com/sitecrew/labortrack-backend-go/internal/domain/master/activity"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/master/trade"
)

// ==========================================
// DEFAULT TRADES
// ==========================================

// GetDefaultTrades returns the standard construction trades seeded for a new
// installation.
func GetDefaultTrades() []trade.Trade {
	return []trade.Trade{
		{Name: "Drywall"},
		{Name: "Electrical"},
		{Name: "Plumbing"},
		{Name: "Carpentry"},
		{Name: "Painting"},
		{Name: "Masonry"},
		{Name: "General Labor"},
	}
}

// ==========================================
// DEFAULT LABOR ACTIVITIES
// ==========================================

// GetDefaultActivities returns the starter labor activities per trade name.
// Trade IDs are resolved at seed time after the trades are inserted.
func GetDefaultActivities() map[string][]activity.LaborActivity {
	return map[string][]activity.LaborActivity{
		"Drywall": {
			{Name: "Hanging Drywall", IsActive: true},
			{Name: "Taping and Mudding", IsActive: true},
			{Name: "Sanding", IsActive: true},
			{Name: "Grid Installation", IsActive: true},
			{Name: "Ceiling Tile Installation", IsActive: true},
		},
		"Electrical": {
			{Name: "Rough-In Wiring", IsActive: true},
			{Name: "Fixture Installation", IsActive: true},
			{Name: "Panel Work", IsActive: true},
		},
		"Plumbing": {
			{Name: "Rough-In Plumbing", IsActive: true},
			{Name: "Fixture Setting", IsActive: true},
		},
		"Carpentry": {
			{Name: "Framing", IsActive: true},
			{Name: "Trim Carpentry", IsActive: true},
			{Name: "Blocking and Backing", IsActive: true},
		},
		"Painting": {
			{Name: "Surface Preparation", IsActive: true},
			{Name: "Priming", IsActive: true},
			{Name: "Painting", IsActive: true},
		},
		"Masonry": {
			{Name: "Block Laying", IsActive: true},
			{Name: "Pointing and Cleaning", IsActive: true},
		},
		"General Labor": {
			{Name: "General Work", IsActive: true},
			{Name: "Material Handling", IsActive: true},
			{Name: "Site Cleanup", IsActive: true},
		},
	}
}

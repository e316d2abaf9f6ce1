package payrollfeed

import (
	"github.com/google/uuid"

	"github.com/sitecrew/labortrack-backend-go/internal/domain/report"
)

// PayrollBatch is the wire format the provider ingests.
type PayrollBatch struct {
	BatchID      string      `json:"batch_id"`
	PeriodStart  string      `json:"period_start"`
	PeriodEnd    string      `json:"period_end"`
	GeneratedAt  string      `json:"generated_at"`
	ReviewedOnly bool        `json:"reviewed_only"`
	TotalHours   float64     `json:"total_hours"`
	TotalCost    float64     `json:"total_cost"`
	Lines        []BatchLine `json:"lines"`
}

// BatchLine is one worker's priced hours for the period.
type BatchLine struct {
	WorkerID   string  `json:"worker_id"`
	WorkerName string  `json:"worker_name"`
	Hours      float64 `json:"hours"`
	BurdenRate float64 `json:"burden_rate"`
	Cost       float64 `json:"cost"`
}

// BuildBatch turns a payroll report into a feed batch with a fresh batch ID.
func BuildBatch(rep report.PayrollReport) PayrollBatch {
	batch := PayrollBatch{
		BatchID:      uuid.New().String(),
		PeriodStart:  rep.PeriodStart,
		PeriodEnd:    rep.PeriodEnd,
		GeneratedAt:  rep.GeneratedAt,
		ReviewedOnly: rep.ReviewedOnly,
		TotalHours:   rep.TotalHours,
		TotalCost:    rep.TotalCost,
		Lines:        make([]BatchLine, 0, len(rep.Rows)),
	}

	for _, row := range rep.Rows {
		batch.Lines = append(batch.Lines, BatchLine{
			WorkerID:   row.UserID,
			WorkerName: row.UserName,
			Hours:      row.TotalHours,
			BurdenRate: row.BurdenRate,
			Cost:       row.TotalCost,
		})
	}

	return batch
}

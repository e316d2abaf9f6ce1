package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sitecrew/labortrack-backend-go/internal/domain/devicelog"
	"github.com/sitecrew/labortrack-backend-go/internal/pkg/database"
)

type deviceLogRepositoryImpl struct {
	db *database.DB
}

// Create implements devicelog.DeviceLogRepository.
func (r *deviceLogRepositoryImpl) Create(ctx context.Context, log devicelog.DeviceLog) (devicelog.DeviceLog, error) {
	q := GetQuerier(ctx, r.db)

	log.ID = uuid.New().String()
	log.CreatedAt = time.Now()

	query := `
		INSERT INTO device_logs (
			id, user_id, session_id, action, device_id, user_agent,
			latitude, longitude, accuracy, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := q.Exec(ctx, query,
		log.ID, log.UserID, log.SessionID, log.Action, log.DeviceID, log.UserAgent,
		log.Latitude, log.Longitude, log.Accuracy, log.CreatedAt,
	)
	if err != nil {
		return devicelog.DeviceLog{}, fmt.Errorf("failed to create device log: %w", err)
	}

	return log, nil
}

// List implements devicelog.DeviceLogRepository.
func (r *deviceLogRepositoryImpl) List(ctx context.Context, filter devicelog.LogFilter) ([]devicelog.DeviceLog, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.UserID != nil && *filter.UserID != "" {
		baseWhere += fmt.Sprintf(" AND dl.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	if filter.Action != nil && *filter.Action != "" {
		baseWhere += fmt.Sprintf(" AND dl.action = $%d", argIdx)
		args = append(args, *filter.Action)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND dl.created_at >= $%d::date", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND dl.created_at < $%d::date + INTERVAL '1 day'", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	// Count total
	countQuery := `
		SELECT COUNT(*)
		FROM device_logs dl
		` + baseWhere

	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count device logs: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT dl.id, dl.user_id, dl.session_id, dl.action, dl.device_id, dl.user_agent,
			   dl.latitude, dl.longitude, dl.accuracy, dl.created_at,
			   u.name AS user_name
		FROM device_logs dl
		JOIN users u ON u.id = dl.user_id
		%s
		ORDER BY dl.created_at DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list device logs: %w", err)
	}
	defer rows.Close()

	var logs []devicelog.DeviceLog
	for rows.Next() {
		var l devicelog.DeviceLog
		err := rows.Scan(
			&l.ID, &l.UserID, &l.SessionID, &l.Action, &l.DeviceID, &l.UserAgent,
			&l.Latitude, &l.Longitude, &l.Accuracy, &l.CreatedAt,
			&l.UserName,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan device log: %w", err)
		}
		logs = append(logs, l)
	}

	return logs, total, nil
}

// DeleteOlderThan implements devicelog.DeviceLogRepository.
func (r *deviceLogRepositoryImpl) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM device_logs WHERE created_at < $1`

	commandTag, err := q.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune device logs: %w", err)
	}

	return commandTag.RowsAffected(), nil
}

func NewDeviceLogRepository(db *database.DB) devicelog.DeviceLogRepository {
	return &deviceLogRepositoryImpl{db: db}
}

package repositories

import (
	"context"

	"hrms-backend/internal/db"
	"hrms-backend/internal/models"
)

type ActivityLogRepository struct {
	DB db.Queryer
}

func NewActivityLogRepository(conn db.Queryer) *ActivityLogRepository {
	return &ActivityLogRepository{DB: conn}
}

// Create records an activity
func (r *ActivityLogRepository) Create(ctx context.Context, userID int, action, details string) error {
	query := `
		INSERT INTO activity_logs (user_id, action, details)
		VALUES ($1, $2, $3)
	`
	_, err := db.QueryerFromContext(ctx, r.DB).Exec(ctx, query, userID, action, details)
	return translatePgError(err)
}

// List returns the newest entries first
func (r *ActivityLogRepository) List(ctx context.Context, skip, limit int) ([]*models.ActivityLog, error) {
	skip, limit = page(skip, limit)
	query := `
		SELECT id, user_id, action, details, timestamp
		FROM activity_logs
		ORDER BY timestamp DESC, id DESC
		OFFSET $1 LIMIT $2
	`
	rows, err := db.QueryerFromContext(ctx, r.DB).Query(ctx, query, skip, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*models.ActivityLog{}
	for rows.Next() {
		var l models.ActivityLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Details, &l.Timestamp); err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}

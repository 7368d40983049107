package repositories

import (
	"context"

	"hrms-backend/internal/db"
	"hrms-backend/internal/models"
)

type SettingsRepository struct {
	DB db.Queryer
}

func NewSettingsRepository(conn db.Queryer) *SettingsRepository {
	return &SettingsRepository{DB: conn}
}

// GetOrCreate returns the user's settings, inserting the defaults on first
// access. The no-op update makes RETURNING yield the existing row.
func (r *SettingsRepository) GetOrCreate(ctx context.Context, userID int) (*models.UserSettings, error) {
	var s models.UserSettings
	err := db.QueryerFromContext(ctx, r.DB).QueryRow(ctx,
		`INSERT INTO user_settings (user_id, receive_notifications, theme, language)
		 VALUES ($1, TRUE, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING id, user_id, receive_notifications, theme, language`,
		userID, models.DefaultTheme, models.DefaultLanguage,
	).Scan(&s.ID, &s.UserID, &s.ReceiveNotifications, &s.Theme, &s.Language)
	if err != nil {
		return nil, translatePgError(err)
	}
	return &s, nil
}

func (r *SettingsRepository) Update(ctx context.Context, s *models.UserSettings) error {
	tag, err := db.QueryerFromContext(ctx, r.DB).Exec(ctx,
		`UPDATE user_settings SET receive_notifications = $1, theme = $2, language = $3 WHERE user_id = $4`,
		s.ReceiveNotifications, s.Theme, s.Language, s.UserID)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

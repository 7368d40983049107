package services

import (
	"context"
	"strings"

	"hrms-backend/internal/auth"
	"hrms-backend/internal/models"
)

var validThemes = map[string]bool{"light": true, "dark": true}

type SettingsService struct {
	TX       TxManager
	Settings SettingsStore
}

func NewSettingsService(tx TxManager, settings SettingsStore) *SettingsService {
	if tx == nil {
		tx = noTx{}
	}
	return &SettingsService{TX: tx, Settings: settings}
}

// Get returns the caller's settings, creating the defaults on first access
func (s *SettingsService) Get(ctx context.Context, actor auth.Actor) (*models.UserSettings, error) {
	return s.Settings.GetOrCreate(ctx, actor.UserID)
}

func (s *SettingsService) Update(ctx context.Context, actor auth.Actor, req *models.UpdateSettingsRequest) (*models.UserSettings, error) {
	if req.Theme != nil && !validThemes[strings.ToLower(*req.Theme)] {
		return nil, Invalid("Theme must be light or dark")
	}
	if req.Language != nil && strings.TrimSpace(*req.Language) == "" {
		return nil, Invalid("Language must not be empty")
	}

	var settings *models.UserSettings
	err := s.TX.WithinReadWrite(ctx, func(ctx context.Context) error {
		var err error
		settings, err = s.Settings.GetOrCreate(ctx, actor.UserID)
		if err != nil {
			return err
		}
		if req.ReceiveNotifications != nil {
			settings.ReceiveNotifications = *req.ReceiveNotifications
		}
		if req.Theme != nil {
			settings.Theme = strings.ToLower(*req.Theme)
		}
		if req.Language != nil {
			settings.Language = strings.TrimSpace(*req.Language)
		}
		return fromStore(s.Settings.Update(ctx, settings), "User settings not found")
	})
	if err != nil {
		return nil, err
	}
	return settings, nil
}

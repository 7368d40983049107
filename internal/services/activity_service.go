package services

import (
	"context"

	"hrms-backend/internal/models"

	"go.uber.org/zap"
)

// ActivityService appends to the audit trail. Recording never fails a request.
type ActivityService struct {
	store ActivityStore
	log   *zap.Logger
}

func NewActivityService(store ActivityStore, log *zap.Logger) *ActivityService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ActivityService{store: store, log: log}
}

// Record stores an entry and only logs when that fails
func (s *ActivityService) Record(ctx context.Context, userID int, action, details string) {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Create(ctx, userID, action, details); err != nil {
		s.log.Warn("activity log write failed",
			zap.Int("user_id", userID), zap.String("action", action), zap.Error(err))
	}
}

func (s *ActivityService) List(ctx context.Context, skip, limit int) ([]*models.ActivityLog, error) {
	return s.store.List(ctx, skip, limit)
}

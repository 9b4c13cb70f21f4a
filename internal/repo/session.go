package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/auth_service/internal/models"
)

// Session lookups are keyed by user id: one session row per user,
// enforced by the unique index on sessions.user_id so two racing
// logins cannot produce duplicates.

func (r *GormRepo) FindSessionByUser(ctx context.Context, userID uuid.UUID) (*models.Session, error) {
	var sess models.Session
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&sess).Error; err != nil {
		return nil, err
	}
	return &sess, nil
}

func (r *GormRepo) CreateSession(ctx context.Context, s *models.Session) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

func (r *GormRepo) DeleteSessionByUser(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Session{}).Error
}

func (r *GormRepo) MarkSessionInvalid(ctx context.Context, userID uuid.UUID) error {
	return r.DB.WithContext(ctx).Model(&models.Session{}).
		Where("user_id = ?", userID).
		Update("is_valid", false).Error
}

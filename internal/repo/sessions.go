package repo

import (
	"context"
	"time"

	"github.com/Skotchmaster/pricelist/internal/models"
)

func (r *GormRepo) CreateSession(ctx context.Context, session *models.AdminSession) error {
	return r.DB.WithContext(ctx).Create(session).Error
}

func (r *GormRepo) GetSession(ctx context.Context, sessionID string) (*models.AdminSession, error) {
	session := models.AdminSession{}
	if err := r.DB.WithContext(ctx).Where("session_id = ?", sessionID).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// DeleteSession is idempotent: deleting a session that is already gone
// is not an error.
func (r *GormRepo) DeleteSession(ctx context.Context, sessionID string) error {
	return r.DB.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&models.AdminSession{}).Error
}

func (r *GormRepo) DeleteExpiredSessions(ctx context.Context) error {
	return r.DB.WithContext(ctx).Where("expires_at < ?", time.Now().Unix()).Delete(&models.AdminSession{}).Error
}

package store

import (
	"context"
	"errors"
	"time"
	"traveldesk/travel-api/internal/model"

	"gorm.io/gorm"
)

type ResetCodes struct {
	db *gorm.DB
}

func NewResetCodes(db *gorm.DB) *ResetCodes {
	return &ResetCodes{db: db}
}

func (s *ResetCodes) Create(ctx context.Context, rc *model.PasswordResetCode) error {
	return s.db.WithContext(ctx).Create(rc).Error
}

// FindActive matches on the exact (code, email) pair and only while the
// code is unused. Expiry is checked by the caller so it can tell an
// expired code apart from one that never existed.
func (s *ResetCodes) FindActive(ctx context.Context, code, email string) (*model.PasswordResetCode, error) {
	var rc model.PasswordResetCode

	err := s.db.WithContext(ctx).
		Where("code = ? AND email = ? AND used = ?", code, email, false).
		Take(&rc).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &rc, nil
}

func (s *ResetCodes) InvalidateAllForUser(ctx context.Context, userID int) error {
	now := time.Now()

	return s.db.WithContext(ctx).
		Model(&model.PasswordResetCode{}).
		Where("user_id = ? AND used = ?", userID, false).
		Updates(map[string]any{
			"used":    true,
			"used_at": &now,
		}).
		Error
}

// MarkUsed flips used only if it was still false. The row count of the
// conditional update is what decides which concurrent consumer wins.
func (s *ResetCodes) MarkUsed(ctx context.Context, id int) (bool, error) {
	now := time.Now()

	res := s.db.WithContext(ctx).
		Model(&model.PasswordResetCode{}).
		Where("id = ? AND used = ?", id, false).
		Updates(map[string]any{
			"used":    true,
			"used_at": &now,
		})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

func (s *ResetCodes) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&model.PasswordResetCode{})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

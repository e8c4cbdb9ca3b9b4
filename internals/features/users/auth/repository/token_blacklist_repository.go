package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"campusevents_backend/internals/features/users/auth/model"
)

type TokenBlacklistRepository struct {
	DB *gorm.DB
}

func NewTokenBlacklistRepository(db *gorm.DB) *TokenBlacklistRepository {
	return &TokenBlacklistRepository{DB: db}
}

func (r *TokenBlacklistRepository) Add(ctx context.Context, tokenHash string, expiresAt time.Time) error {
	row := model.TokenBlacklist{Token: tokenHash, ExpiredAt: expiresAt}
	return r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token"}},
			DoUpdates: clause.AssignmentColumns([]string{"expired_at"}),
		}).
		Create(&row).Error
}

// Exists reports an unexpired entry for tokenHash.
func (r *TokenBlacklistRepository) Exists(ctx context.Context, tokenHash string, now time.Time) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.TokenBlacklist{}).
		Where("token = ? AND expired_at > ?", tokenHash, now).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

// PurgeExpired deletes rows whose token can no longer be used anyway.
func (r *TokenBlacklistRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.DB.WithContext(ctx).Where("expired_at <= ?", now).Delete(&model.TokenBlacklist{})
	return res.RowsAffected, res.Error
}

package repository

import (
	"context"

	"socialdog/internal/domain/model"
	repo "socialdog/internal/repository"

	"gorm.io/gorm"
)

type sniffGormRepository struct {
	db *gorm.DB
}

// DI
func NewSniffGormRepository(db *gorm.DB) repo.SniffRepository {
	return &sniffGormRepository{db: db}
}

// スニフを保存。
func (r *sniffGormRepository) Create(ctx context.Context, sniff *model.Sniff) error {
	if err := r.db.WithContext(ctx).Create(sniff).Error; err != nil {
		return err
	}
	return nil
}

// sniff済みかどうか。
func (r *sniffGormRepository) Exists(ctx context.Context, userID string, barkID string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.Sniff{}).
		Where("user_id = ? AND bark_id = ?", userID, barkID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

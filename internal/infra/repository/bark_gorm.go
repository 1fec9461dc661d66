package repository

import (
	"context"
	"errors"
	"strings"

	"socialdog/internal/domain/model"
	repo "socialdog/internal/repository"

	"gorm.io/gorm"
)

type barkGormRepository struct {
	db *gorm.DB
}

// DI
func NewBarkGormRepository(db *gorm.DB) repo.BarkRepository {
	return &barkGormRepository{db: db}
}

// バークの作成
func (r *barkGormRepository) Create(ctx context.Context, bark *model.Bark) error {
	if err := r.db.WithContext(ctx).Create(bark).Error; err != nil {
		return err
	}
	return nil
}

// IDでバークを取得（投稿者も読む）
func (r *barkGormRepository) FindByID(ctx context.Context, barkID string) (*model.Bark, error) {
	var b model.Bark

	err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", barkID).
		First(&b).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrBarkNotFound
		}
		return nil, err
	}

	return &b, nil
}

// バークを更新。
func (r *barkGormRepository) Update(ctx context.Context, bark *model.Bark) error {
	if err := r.db.WithContext(ctx).Save(bark).Error; err != nil {
		return err
	}
	return nil
}

// バークを削除。
func (r *barkGormRepository) Delete(ctx context.Context, barkID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", barkID).
		Delete(&model.Bark{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repo.ErrBarkNotFound
	}

	return nil
}

// 検索/並び替え/ページング付きで返す。
func (r *barkGormRepository) List(ctx context.Context, q repo.BarkListQuery) ([]model.Bark, int64, error) {
	var barks []model.Bark
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Bark{})

	// q はmessageを対象
	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("message ILIKE ?", like)
	}

	// 投稿者で絞る
	if q.Username != "" {
		tx = tx.Joins("JOIN users ON users.id = barks.user_id").
			Where("users.username = ?", q.Username)
	}

	// total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Bark{}, 0, err
	}

	// 並び順。trendingはsniff_count降順を優先。
	if q.Trending {
		tx = tx.Order("sniff_count desc").Order("created_at desc")
	} else {
		switch q.OrderBy {
		case "created_at":
			tx = tx.Order("created_at asc")
		case "sniff_count":
			tx = tx.Order("sniff_count asc")
		case "-sniff_count":
			tx = tx.Order("sniff_count desc")
		default:
			tx = tx.Order("created_at desc")
		}
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Preload("User").Offset(offset).Limit(q.Limit).Find(&barks).Error; err != nil {
		return []model.Bark{}, 0, err
	}

	return barks, total, nil
}

// sniff_countを+1 します。
func (r *barkGormRepository) IncrementSniffCount(ctx context.Context, barkID string) error {
	res := r.db.WithContext(ctx).
		Model(&model.Bark{}).
		Where("id = ?", barkID).
		UpdateColumn("sniff_count", gorm.Expr("sniff_count + ?", 1))

	if res.Error != nil {
		return res.Error
	}

	// 0件更新は「対象がない」
	if res.RowsAffected == 0 {
		return repo.ErrBarkNotFound
	}
	return nil
}

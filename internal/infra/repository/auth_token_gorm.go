package repository

import (
	"context"
	"errors"

	"socialdog/internal/domain/model"
	repo "socialdog/internal/repository"

	"gorm.io/gorm"
)

type authTokenGormRepository struct {
	db *gorm.DB // DB接続（GORM）
}

// GORM実装
func NewAuthTokenRepository(db *gorm.DB) repo.AuthTokenRepository {
	return &authTokenGormRepository{db: db}
}

// トークンを保存する。
func (r *authTokenGormRepository) Create(ctx context.Context, token *model.AuthToken) error {
	// タイムアウトやキャンセルをDB処理に伝える
	if err := r.db.WithContext(ctx).Create(token).Error; err != nil {
		return err
	}
	return nil
}

// keyで1件検索します（kind問わず）。所有ユーザーをPreloadで読む。
func (r *authTokenGormRepository) FindByKey(ctx context.Context, key string) (*model.AuthToken, error) {
	var token model.AuthToken

	err := r.db.WithContext(ctx).
		Preload("User").
		Where("key = ?", key).
		First(&token).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrAuthTokenNotFound
		}
		return nil, err
	}

	return &token, nil
}

// keyとkindで1件検索します。
func (r *authTokenGormRepository) FindByKeyAndKind(ctx context.Context, key string, kind model.TokenKind) (*model.AuthToken, error) {
	var token model.AuthToken

	err := r.db.WithContext(ctx).
		Preload("User").
		Where("key = ? AND kind = ?", key, kind).
		First(&token).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrAuthTokenNotFound
		}
		return nil, err
	}

	return &token, nil
}

// 指定ユーザーのトークンを全削除します。
func (r *authTokenGormRepository) DeleteAllByUserID(ctx context.Context, userID string) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.AuthToken{}).Error; err != nil {
		return err
	}
	return nil
}

// 指定ユーザーの指定kindのトークンを削除します。
func (r *authTokenGormRepository) DeleteAllByUserIDAndKind(ctx context.Context, userID string, kind model.TokenKind) error {
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ?", userID, kind).
		Delete(&model.AuthToken{}).Error; err != nil {
		return err
	}
	return nil
}

// is_activeをfalseにして失効。
func (r *authTokenGormRepository) Deactivate(ctx context.Context, tokenID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.AuthToken{}).
		Where("id = ? AND is_active = ?", tokenID, true).
		Update("is_active", false)

	if result.Error != nil {
		return result.Error
	}

	// 更新件数が0なら「すでに無効/存在しない」の可能性
	if result.RowsAffected == 0 {
		return repo.ErrAuthTokenNotFound
	}

	return nil
}

package repository

import (
	"context"
	"errors"
	"strings"

	"socialdog/internal/domain/model"
	repo "socialdog/internal/repository"

	"gorm.io/gorm"
)

type userGormRepository struct {
	db *gorm.DB
}

// DI
// main.goでこれをnewしてusecaseに注入します。
func NewUserGormRepository(db *gorm.DB) repo.UserRepository {
	return &userGormRepository{db: db}
}

// Create はユーザーを新規作成
func (r *userGormRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}
	return nil
}

// IDでユーザーを1件取得
func (r *userGormRepository) FindByID(ctx context.Context, userID string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("id = ?", userID).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

// usernameでユーザーを1件取得
func (r *userGormRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User

	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repo.ErrUserNotFound
		}
		return nil, err
	}

	return &u, nil
}

// ユーザーを更新。
func (r *userGormRepository) Update(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return err
	}
	return nil
}

// 一覧（username部分一致 + 並び替え + ページング）
func (r *userGormRepository) List(ctx context.Context, q repo.UserListQuery) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.User{})

	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("username ILIKE ?", like)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.User{}, 0, err
	}

	switch q.OrderBy {
	case "username":
		tx = tx.Order("username asc")
	case "-username":
		tx = tx.Order("username desc")
	case "created_at":
		tx = tx.Order("created_at asc")
	default:
		tx = tx.Order("created_at desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&users).Error; err != nil {
		return []model.User{}, 0, err
	}

	return users, total, nil
}

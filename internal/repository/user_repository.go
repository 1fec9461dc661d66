package repository

import (
	"context"
	"errors"

	"socialdog/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// ユーザー一覧の検索条件
type UserListQuery struct {
	Page    int
	Limit   int
	Q       string // usernameの部分一致
	OrderBy string // username / created_at（-で降順）
}

// 保存・取得を約束
type UserRepository interface {
	// 新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する
	FindByID(ctx context.Context, userID string) (*model.User, error)
	// usernameからユーザーを1件取得する
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// ユーザー情報の更新（favorite_toyやusernameの変更など）
	Update(ctx context.Context, user *model.User) error
	// 一覧（フィルタ+ページング）
	List(ctx context.Context, q UserListQuery) ([]model.User, int64, error)
}

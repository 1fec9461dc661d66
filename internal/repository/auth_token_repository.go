package repository

import (
	"context"
	"errors"

	"socialdog/internal/domain/model"
)

var ErrAuthTokenNotFound = errors.New("auth token not found")

// 不透明トークンの保存・取得・失効・削除
type AuthTokenRepository interface {
	Create(ctx context.Context, token *model.AuthToken) error
	// keyだけで検索（kind問わず）。所有ユーザーも一緒に読む。
	FindByKey(ctx context.Context, key string) (*model.AuthToken, error)
	// keyとkindで検索。所有ユーザーも一緒に読む。
	FindByKeyAndKind(ctx context.Context, key string, kind model.TokenKind) (*model.AuthToken, error)
	// 指定ユーザーのトークンを全削除（再ログイン/ローテーション前に使う）
	DeleteAllByUserID(ctx context.Context, userID string) error
	// kindを絞って削除
	DeleteAllByUserIDAndKind(ctx context.Context, userID string, kind model.TokenKind) error
	// is_activeをfalseにする（削除せず失効）
	Deactivate(ctx context.Context, tokenID string) error
}

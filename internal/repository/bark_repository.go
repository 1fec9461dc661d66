package repository

import (
	"context"
	"errors"

	"socialdog/internal/domain/model"
)

var ErrBarkNotFound = errors.New("bark not found")

// バーク一覧の検索条件
type BarkListQuery struct {
	Page     int
	Limit    int
	Q        string // messageの部分一致
	Username string // 投稿者のusername
	OrderBy  string // created_at / sniff_count（-で降順）
	Trending bool   // sniff_count降順を優先
}

type BarkRepository interface {
	Create(ctx context.Context, bark *model.Bark) error
	// 投稿者も一緒に読む
	FindByID(ctx context.Context, barkID string) (*model.Bark, error)
	Update(ctx context.Context, bark *model.Bark) error
	Delete(ctx context.Context, barkID string) error
	List(ctx context.Context, q BarkListQuery) ([]model.Bark, int64, error)
	// sniff_countを+1する
	IncrementSniffCount(ctx context.Context, barkID string) error
}

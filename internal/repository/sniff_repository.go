package repository

import (
	"context"

	"socialdog/internal/domain/model"
)

type SniffRepository interface {
	Create(ctx context.Context, sniff *model.Sniff) error
	// 同じユーザーが同じバークをsniff済みか
	Exists(ctx context.Context, userID string, barkID string) (bool, error)
}

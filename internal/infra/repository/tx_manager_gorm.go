package repository

import (
	"context"

	repo "socialdog/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users      repo.UserRepository
	authTokens repo.AuthTokenRepository
	barks      repo.BarkRepository
	sniffs     repo.SniffRepository
}

func (r *txReposGorm) Users() repo.UserRepository           { return r.users }
func (r *txReposGorm) AuthTokens() repo.AuthTokenRepository { return r.authTokens }
func (r *txReposGorm) Barks() repo.BarkRepository           { return r.barks }
func (r *txReposGorm) Sniffs() repo.SniffRepository         { return r.sniffs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:      NewUserGormRepository(tx),
			authTokens: NewAuthTokenRepository(tx),
			barks:      NewBarkGormRepository(tx),
			sniffs:     NewSniffGormRepository(tx),
		}
		return fn(r)
	})
}

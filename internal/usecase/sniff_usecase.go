package usecase

import (
	"context"
	"errors"
	"net/http"

	"socialdog/internal/domain/model"
	"socialdog/internal/repository"

	"github.com/google/uuid"
)

type SniffUsecase struct {
	tx repository.TransactionManager
}

// DI
func NewSniffUsecase(tx repository.TransactionManager) *SniffUsecase {
	return &SniffUsecase{tx: tx}
}

// Createはバークにsniffを付けて、sniff_countを+1する。
// 確認→作成→加算は1トランザクション。
func (u *SniffUsecase) Create(ctx context.Context, userID string, barkID string) (*model.Bark, error) {
	var bark *model.Bark

	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		b, err := r.Barks().FindByID(ctx, barkID)
		if errors.Is(err, repository.ErrBarkNotFound) {
			return NewHTTPError(http.StatusNotFound, "bark not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 二重sniffは409
		exists, err := r.Sniffs().Exists(ctx, userID, barkID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if exists {
			return NewHTTPError(http.StatusConflict, "already sniffed this bark")
		}

		sniff := &model.Sniff{
			ID:     uuid.NewString(),
			UserID: userID,
			BarkID: barkID,
		}
		if err := r.Sniffs().Create(ctx, sniff); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Barks().IncrementSniffCount(ctx, barkID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		b.SniffCount++
		bark = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return bark, nil
}

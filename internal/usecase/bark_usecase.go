package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"socialdog/internal/domain/model"
	"socialdog/internal/repository"

	"github.com/google/uuid"
)

type BarkUsecase struct {
	barks repository.BarkRepository
}

// DI
func NewBarkUsecase(barks repository.BarkRepository) *BarkUsecase {
	return &BarkUsecase{barks: barks}
}

type CreateBarkInput struct {
	Message string
}

// バーク投稿
func (u *BarkUsecase) Create(ctx context.Context, userID string, in CreateBarkInput) (*model.Bark, error) {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "message required")
	}
	if len([]rune(in.Message)) > 200 {
		return nil, NewHTTPError(http.StatusBadRequest, "message too long")
	}

	bark := &model.Bark{
		ID:      uuid.NewString(),
		Message: in.Message,
		UserID:  userID,
	}

	if err := u.barks.Create(ctx, bark); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.barks.FindByID(ctx, bark.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}

type ListBarksInput struct {
	Page     int
	Limit    int
	Q        string
	Username string
	OrderBy  string
	Trending bool
}

type BarkListOutput struct {
	Items []model.Bark `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *BarkUsecase) List(ctx context.Context, in ListBarksInput) (BarkListOutput, error) {
	if in.Page < 1 {
		return BarkListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return BarkListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return BarkListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	switch in.OrderBy {
	case "", "created_at", "-created_at", "sniff_count", "-sniff_count":
	default:
		return BarkListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order_by")
	}

	items, total, err := u.barks.List(ctx, repository.BarkListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        strings.TrimSpace(in.Q),
		Username: strings.TrimSpace(in.Username),
		OrderBy:  in.OrderBy,
		Trending: in.Trending,
	})
	if err != nil {
		return BarkListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return BarkListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// IDでバークを取得
func (u *BarkUsecase) Get(ctx context.Context, barkID string) (*model.Bark, error) {
	bark, err := u.barks.FindByID(ctx, barkID)
	if errors.Is(err, repository.ErrBarkNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "bark not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return bark, nil
}

// Updateは本人のバークだけ。他人のは存在ごと隠す（404）。
func (u *BarkUsecase) Update(ctx context.Context, barkID string, userID string, in CreateBarkInput) (*model.Bark, error) {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "message required")
	}
	if len([]rune(in.Message)) > 200 {
		return nil, NewHTTPError(http.StatusBadRequest, "message too long")
	}

	bark, err := u.barks.FindByID(ctx, barkID)
	if errors.Is(err, repository.ErrBarkNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "bark not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if bark.UserID != userID {
		return nil, NewHTTPError(http.StatusNotFound, "bark not found")
	}

	bark.Message = in.Message
	if err := u.barks.Update(ctx, bark); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return bark, nil
}

// Deleteも本人のバークだけ（404で隠す）。
func (u *BarkUsecase) Delete(ctx context.Context, barkID string, userID string) error {
	bark, err := u.barks.FindByID(ctx, barkID)
	if errors.Is(err, repository.ErrBarkNotFound) {
		return NewHTTPError(http.StatusNotFound, "bark not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if bark.UserID != userID {
		return NewHTTPError(http.StatusNotFound, "bark not found")
	}

	if err := u.barks.Delete(ctx, barkID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

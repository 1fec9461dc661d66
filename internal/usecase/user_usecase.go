package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"socialdog/internal/domain/model"
	"socialdog/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type UserUsecase struct {
	users     repository.UserRepository
	tx        repository.TransactionManager
	validator AuthValidator
}

// DI
func NewUserUsecase(
	users repository.UserRepository,
	tx repository.TransactionManager,
	validator AuthValidator,
) *UserUsecase {
	return &UserUsecase{
		users:     users,
		tx:        tx,
		validator: validator,
	}
}

type RegisterInput struct {
	Username string
	Password string
}

// 登録と同時に初回のaccessトークンを返す
type RegisterOutput struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Registerはユーザー作成+初回accessトークン発行。
func (u *UserUsecase) Register(ctx context.Context, in RegisterInput) (*RegisterOutput, error) {
	if err := u.validator.ValidateRegister(ctx, in.Username, in.Password); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, "validation error")
	}

	// username重複チェック
	existing, err := u.users.FindByUsername(ctx, in.Username)
	if err == nil && existing != nil {
		return nil, NewHTTPError(http.StatusConflict, "username already exists")
	}
	if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	now := time.Now()

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(pwHash),
		IsActive:     true,
	}

	access, err := model.NewAuthToken(user.ID, model.TokenKindAccess, now)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	// ユーザーとトークンを一緒に保存
	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.Users().Create(ctx, user); err != nil {
			return err
		}
		return r.AuthTokens().Create(ctx, access)
	})
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	safeUser := *user
	safeUser.PasswordHash = ""

	return &RegisterOutput{
		User:  safeUser,
		Token: access.Key,
	}, nil
}

type ListUsersInput struct {
	Page    int
	Limit   int
	Q       string
	OrderBy string
}

type UserListOutput struct {
	Items []model.User `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *UserUsecase) List(ctx context.Context, in ListUsersInput) (UserListOutput, error) {
	if in.Page < 1 {
		return UserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return UserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	switch in.OrderBy {
	case "", "username", "-username", "created_at", "-created_at":
	default:
		return UserListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid order_by")
	}

	items, total, err := u.users.List(ctx, repository.UserListQuery{
		Page:    in.Page,
		Limit:   in.Limit,
		Q:       strings.TrimSpace(in.Q),
		OrderBy: in.OrderBy,
	})
	if err != nil {
		return UserListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return UserListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// IDでユーザーを取得
func (u *UserUsecase) Get(ctx context.Context, userID string) (*model.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, NewHTTPError(http.StatusNotFound, "dog user not found")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return user, nil
}

type UpdateMeInput struct {
	Username    *string
	FavoriteToy *string
}

// UpdateMeはログイン中ユーザー自身の更新。
func (u *UserUsecase) UpdateMe(ctx context.Context, userID string, in UpdateMeInput) (*model.User, error) {
	user, err := u.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// username変更は重複チェック
	if in.Username != nil && *in.Username != user.Username {
		newName := strings.TrimSpace(*in.Username)
		if newName == "" {
			return nil, NewHTTPError(http.StatusBadRequest, "username required")
		}

		existing, err := u.users.FindByUsername(ctx, newName)
		if err == nil && existing != nil {
			return nil, NewHTTPError(http.StatusConflict, "username already exists")
		}
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}

		user.Username = newName
	}

	if in.FavoriteToy != nil {
		user.FavoriteToy = *in.FavoriteToy
	}

	if err := u.users.Update(ctx, user); err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return user, nil
}

package usecase

import (
	"context"
	"errors"
	"time"

	"socialdog/internal/domain/model"
	"socialdog/internal/repository"
	"socialdog/internal/token"

	"golang.org/x/crypto/bcrypt"
)

var (
	// 400 入力不足
	ErrValidation = errors.New("validation error")
	// 401 ユーザー名またはパスワードが違う
	ErrAuthentication = errors.New("invalid credentials")
	// 401 偽造・不明・形式不正トークン
	ErrTokenInvalid = errors.New("token invalid")
	// 401 形式は正しいが期限切れ
	ErrTokenExpired = errors.New("token expired")
)

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateLogin(ctx context.Context, username string, password string) error
	ValidateRefresh(ctx context.Context, refreshToken string) error
	ValidateRegister(ctx context.Context, username string, password string) error
}

// ログインの入力
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// 両方式で同じ形を返す
type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type AuthUsecase struct {
	users     repository.UserRepository
	tokens    repository.AuthTokenRepository
	tx        repository.TransactionManager
	codec     *token.Codec
	validator AuthValidator
}

func NewAuthUsecase(
	users repository.UserRepository,
	tokens repository.AuthTokenRepository,
	tx repository.TransactionManager,
	codec *token.Codec,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		users:     users,
		tokens:    tokens,
		tx:        tx,
		codec:     codec,
		validator: validator,
	}
}

// OpaqueLoginはDB保存型トークンのログイン。
// 既存トークンを両kindとも全削除してから新しいペアを発行する。
func (u *AuthUsecase) OpaqueLogin(ctx context.Context, req LoginRequest) (*TokenPairResponse, error) {
	if err := u.validator.ValidateLogin(ctx, req.Username, req.Password); err != nil {
		return nil, err
	}

	user := u.verifyCredentials(ctx, req.Username, req.Password)
	if user == nil {
		return nil, ErrAuthentication
	}

	now := time.Now()

	access, err := model.NewAuthToken(user.ID, model.TokenKindAccess, now)
	if err != nil {
		return nil, err
	}
	refresh, err := model.NewAuthToken(user.ID, model.TokenKindRefresh, now)
	if err != nil {
		return nil, err
	}

	// 全削除→発行は1トランザクション。
	// 同時ログインしてもkindごとに1つしか残らない。
	err = u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		if err := r.AuthTokens().DeleteAllByUserID(ctx, user.ID); err != nil {
			return err
		}
		if err := r.AuthTokens().Create(ctx, access); err != nil {
			return err
		}
		return r.AuthTokens().Create(ctx, refresh)
	})
	if err != nil {
		return nil, err
	}

	return &TokenPairResponse{
		AccessToken:  access.Key,
		RefreshToken: refresh.Key,
		ExpiresIn:    int(access.Expires.Sub(now).Seconds()),
	}, nil
}

// OpaqueRefreshはリフレッシュキーでペアを再発行する。
// refreshトークンは使い切り。2回目はErrTokenInvalidになる（前のレコードは削除済み）。
func (u *AuthUsecase) OpaqueRefresh(ctx context.Context, refreshKey string) (*TokenPairResponse, error) {
	if err := u.validator.ValidateRefresh(ctx, refreshKey); err != nil {
		return nil, err
	}

	var resp *TokenPairResponse

	// 検索→検証→全削除→再発行を1トランザクションで。
	err := u.tx.WithinTx(ctx, func(r repository.TxRepos) error {
		rt, err := r.AuthTokens().FindByKeyAndKind(ctx, refreshKey, model.TokenKindRefresh)
		if errors.Is(err, repository.ErrAuthTokenNotFound) {
			return ErrTokenInvalid
		}
		if err != nil {
			return err
		}

		now := time.Now()
		if !rt.IsValid(now) {
			return ErrTokenExpired
		}

		if err := r.AuthTokens().DeleteAllByUserID(ctx, rt.UserID); err != nil {
			return err
		}

		access, err := model.NewAuthToken(rt.UserID, model.TokenKindAccess, now)
		if err != nil {
			return err
		}
		refresh, err := model.NewAuthToken(rt.UserID, model.TokenKindRefresh, now)
		if err != nil {
			return err
		}

		if err := r.AuthTokens().Create(ctx, access); err != nil {
			return err
		}
		if err := r.AuthTokens().Create(ctx, refresh); err != nil {
			return err
		}

		resp = &TokenPairResponse{
			AccessToken:  access.Key,
			RefreshToken: refresh.Key,
			ExpiresIn:    int(access.Expires.Sub(now).Seconds()),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

// JWTLoginは自己完結トークンのログイン。DBには何も保存しない。
func (u *AuthUsecase) JWTLogin(ctx context.Context, req LoginRequest) (*TokenPairResponse, error) {
	if err := u.validator.ValidateLogin(ctx, req.Username, req.Password); err != nil {
		return nil, err
	}

	user := u.verifyCredentials(ctx, req.Username, req.Password)
	if user == nil {
		return nil, ErrAuthentication
	}

	now := time.Now()

	access, err := u.codec.Encode(user.ID, token.TypeAccess, now)
	if err != nil {
		return nil, err
	}
	refresh, err := u.codec.Encode(user.ID, token.TypeRefresh, now)
	if err != nil {
		return nil, err
	}

	return &TokenPairResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		// accessトークンの実際のexp - iat（= 14400秒）
		ExpiresIn: int(token.AccessTokenTTL.Seconds()),
	}, nil
}

// JWTRefreshはrefresh型JWTで新しいペアを発行する。
// 古いペアはサーバ側では無効化できない（自己完結トークンのため、各自のexpまで有効）。
func (u *AuthUsecase) JWTRefresh(ctx context.Context, refreshToken string) (*TokenPairResponse, error) {
	if err := u.validator.ValidateRefresh(ctx, refreshToken); err != nil {
		return nil, err
	}

	claims, err := u.codec.Decode(refreshToken)
	if errors.Is(err, token.ErrTokenExpired) {
		return nil, ErrTokenExpired
	}
	if err != nil {
		return nil, ErrTokenInvalid
	}

	// access型をrefreshに使うのは不正
	if claims.TokenType != token.TypeRefresh {
		return nil, ErrTokenInvalid
	}

	// ユーザーがもう居なければ不正扱い
	user, err := u.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrTokenInvalid
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()

	access, err := u.codec.Encode(user.ID, token.TypeAccess, now)
	if err != nil {
		return nil, err
	}
	newRefresh, err := u.codec.Encode(user.ID, token.TypeRefresh, now)
	if err != nil {
		return nil, err
	}

	return &TokenPairResponse{
		AccessToken:  access,
		RefreshToken: newRefresh,
		ExpiresIn:    int(token.AccessTokenTTL.Seconds()),
	}, nil
}

// Logoutは提示された不透明トークンを失効させる（削除はしない）。
// JWTはDBに無いのでErrTokenInvalidになる。
func (u *AuthUsecase) Logout(ctx context.Context, bearerKey string) error {
	tok, err := u.tokens.FindByKey(ctx, bearerKey)
	if errors.Is(err, repository.ErrAuthTokenNotFound) {
		return ErrTokenInvalid
	}
	if err != nil {
		return err
	}

	return u.tokens.Deactivate(ctx, tok.ID)
}

// ユーザー名照合+bcrypt照合。
// 失敗理由は区別せずnilを返す（ユーザー名の存在を漏らさない）。
func (u *AuthUsecase) verifyCredentials(ctx context.Context, username string, password string) *model.User {
	user, err := u.users.FindByUsername(ctx, username)
	if err != nil || user == nil {
		return nil
	}

	if !user.IsActive {
		return nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil
	}

	return user
}

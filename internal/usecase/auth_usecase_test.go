package usecase_test

import (
	"context"
	"testing"
	"time"

	"socialdog/internal/domain/model"
	"socialdog/internal/repository"
	"socialdog/internal/token"
	"socialdog/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newAuthUC(
	users *MockUserRepository,
	tokens *MockAuthTokenRepository,
) (*usecase.AuthUsecase, *token.Codec) {
	codec := token.NewCodec("test-secret")
	tx := newFakeTxManager(users, tokens, new(MockBarkRepository), new(MockSniffRepository))
	return usecase.NewAuthUsecase(users, tokens, tx, codec, passValidator{}), codec
}

func activeUser(t *testing.T, password string) *model.User {
	t.Helper()
	return &model.User{
		ID:           "user-1",
		Username:     "alice",
		PasswordHash: mustHash(t, password),
		IsActive:     true,
	}
}

// =====================
// OpaqueLogin
// =====================

func TestAuthUsecase_OpaqueLogin_Success(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, _ := newAuthUC(users, tokens)

	users.On("FindByUsername", ctx, "alice").Return(activeUser(t, "correct-pass"), nil)
	// 既存トークンは両kindとも全削除してから発行
	tokens.On("DeleteAllByUserID", ctx, "user-1").Return(nil)
	tokens.On("Create", ctx, mock.AnythingOfType("*model.AuthToken")).Return(nil)

	out, err := uc.OpaqueLogin(ctx, usecase.LoginRequest{Username: "alice", Password: "correct-pass"})

	assert.NoError(t, err)
	assert.Regexp(t, "^[0-9a-f]{40}$", out.AccessToken)
	assert.Regexp(t, "^[0-9a-f]{40}$", out.RefreshToken)
	assert.NotEqual(t, out.AccessToken, out.RefreshToken)
	// accessの残り秒数（4時間）
	assert.Equal(t, 14400, out.ExpiresIn)

	tokens.AssertNumberOfCalls(t, "Create", 2)
	tokens.AssertCalled(t, "DeleteAllByUserID", ctx, "user-1")
}

func TestAuthUsecase_OpaqueLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, _ := newAuthUC(users, tokens)

	users.On("FindByUsername", ctx, "alice").Return(activeUser(t, "correct-pass"), nil)

	out, err := uc.OpaqueLogin(ctx, usecase.LoginRequest{Username: "alice", Password: "wrong"})

	assert.ErrorIs(t, err, usecase.ErrAuthentication)
	assert.Nil(t, out)
	// 失敗時はトークンを一切作らない
	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	tokens.AssertNotCalled(t, "DeleteAllByUserID", mock.Anything, mock.Anything)
}

func TestAuthUsecase_OpaqueLogin_UnknownUser(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, _ := newAuthUC(users, tokens)

	users.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	// 未知ユーザーもパスワード違いも同じエラー（存在を漏らさない）
	_, err := uc.OpaqueLogin(ctx, usecase.LoginRequest{Username: "ghost", Password: "whatever"})

	assert.ErrorIs(t, err, usecase.ErrAuthentication)
	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_OpaqueLogin_InactiveUser(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, _ := newAuthUC(users, tokens)

	u := activeUser(t, "correct-pass")
	u.IsActive = false
	users.On("FindByUsername", ctx, "alice").Return(u, nil)

	_, err := uc.OpaqueLogin(ctx, usecase.LoginRequest{Username: "alice", Password: "correct-pass"})

	assert.ErrorIs(t, err, usecase.ErrAuthentication)
}

// =====================
// OpaqueRefresh
// =====================

func validRefreshToken(userID string) *model.AuthToken {
	expires := time.Now().Add(24 * time.Hour)
	return &model.AuthToken{
		ID:       "token-1",
		Key:      "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		UserID:   userID,
		Kind:     model.TokenKindRefresh,
		Expires:  &expires,
		IsActive: true,
	}
}

func TestAuthUsecase_OpaqueRefresh_Success(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, _ := newAuthUC(users, tokens)

	rt := validRefreshToken("user-1")
	tokens.On("FindByKeyAndKind", ctx, rt.Key, model.TokenKindRefresh).Return(rt, nil)
	tokens.On("DeleteAllByUserID", ctx, "user-1").Return(nil)
	tokens.On("Create", ctx, mock.AnythingOfType("*model.AuthToken")).Return(nil)

	out, err := uc.OpaqueRefresh(ctx, rt.Key)

	assert.NoError(t, err)
	assert.Equal(t, 14400, out.ExpiresIn)
	// 古いキーは返ってこない
	assert.NotEqual(t, rt.Key, out.AccessToken)
	assert.NotEqual(t, rt.Key, out.RefreshToken)

	tokens.AssertCalled(t, "DeleteAllByUserID", ctx, "user-1")
	tokens.AssertNumberOfCalls(t, "Create", 2)
}

func TestAuthUsecase_OpaqueRefresh_UnknownKey(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, _ := newAuthUC(users, tokens)

	// ローテーション済みのキーはレコードが消えているのでここに落ちる
	tokens.On("FindByKeyAndKind", ctx, "gone", model.TokenKindRefresh).
		Return(nil, repository.ErrAuthTokenNotFound)

	_, err := uc.OpaqueRefresh(ctx, "gone")

	assert.ErrorIs(t, err, usecase.ErrTokenInvalid)
	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_OpaqueRefresh_Expired(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, _ := newAuthUC(users, tokens)

	rt := validRefreshToken("user-1")
	past := time.Now().Add(-time.Minute)
	rt.Expires = &past
	tokens.On("FindByKeyAndKind", ctx, rt.Key, model.TokenKindRefresh).Return(rt, nil)

	_, err := uc.OpaqueRefresh(ctx, rt.Key)

	assert.ErrorIs(t, err, usecase.ErrTokenExpired)
	tokens.AssertNotCalled(t, "DeleteAllByUserID", mock.Anything, mock.Anything)
}

func TestAuthUsecase_OpaqueRefresh_Deactivated(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, _ := newAuthUC(users, tokens)

	rt := validRefreshToken("user-1")
	rt.IsActive = false
	tokens.On("FindByKeyAndKind", ctx, rt.Key, model.TokenKindRefresh).Return(rt, nil)

	_, err := uc.OpaqueRefresh(ctx, rt.Key)

	assert.ErrorIs(t, err, usecase.ErrTokenExpired)
}

// =====================
// JWTLogin / JWTRefresh
// =====================

func TestAuthUsecase_JWTLogin_Success(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, codec := newAuthUC(users, tokens)

	users.On("FindByUsername", ctx, "alice").Return(activeUser(t, "correct-pass"), nil)

	out, err := uc.JWTLogin(ctx, usecase.LoginRequest{Username: "alice", Password: "correct-pass"})

	assert.NoError(t, err)
	assert.Equal(t, 14400, out.ExpiresIn)

	// 返ったトークンはcodecで検証できる
	access, err := codec.Decode(out.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", access.UserID)
	assert.Equal(t, token.TypeAccess, access.TokenType)

	refresh, err := codec.Decode(out.RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, token.TypeRefresh, refresh.TokenType)

	// DBには何も保存しない
	tokens.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthUsecase_JWTLogin_BadCredentials(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, _ := newAuthUC(users, tokens)

	users.On("FindByUsername", ctx, "alice").Return(activeUser(t, "correct-pass"), nil)

	_, err := uc.JWTLogin(ctx, usecase.LoginRequest{Username: "alice", Password: "wrong"})

	assert.ErrorIs(t, err, usecase.ErrAuthentication)
}

func TestAuthUsecase_JWTRefresh_Success(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, codec := newAuthUC(users, tokens)

	users.On("FindByID", ctx, "user-1").Return(activeUser(t, "x"), nil)

	refresh, err := codec.Encode("user-1", token.TypeRefresh, time.Now())
	assert.NoError(t, err)

	out, err := uc.JWTRefresh(ctx, refresh)

	assert.NoError(t, err)
	assert.Equal(t, 14400, out.ExpiresIn)

	access, err := codec.Decode(out.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, token.TypeAccess, access.TokenType)
	assert.Equal(t, "user-1", access.UserID)
}

func TestAuthUsecase_JWTRefresh_AccessTokenRejected(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, codec := newAuthUC(users, tokens)

	// access型をrefreshに使うのは不正
	access, err := codec.Encode("user-1", token.TypeAccess, time.Now())
	assert.NoError(t, err)

	_, err = uc.JWTRefresh(ctx, access)

	assert.ErrorIs(t, err, usecase.ErrTokenInvalid)
}

func TestAuthUsecase_JWTRefresh_UnknownUser(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, codec := newAuthUC(users, tokens)

	users.On("FindByID", ctx, "user-1").Return(nil, repository.ErrUserNotFound)

	refresh, err := codec.Encode("user-1", token.TypeRefresh, time.Now())
	assert.NoError(t, err)

	_, err = uc.JWTRefresh(ctx, refresh)

	assert.ErrorIs(t, err, usecase.ErrTokenInvalid)
}

func TestAuthUsecase_JWTRefresh_Expired(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, codec := newAuthUC(users, tokens)

	// 8日前発行のrefresh（TTL 7d）は期限切れ
	refresh, err := codec.Encode("user-1", token.TypeRefresh, time.Now().Add(-8*24*time.Hour))
	assert.NoError(t, err)

	_, err = uc.JWTRefresh(ctx, refresh)

	assert.ErrorIs(t, err, usecase.ErrTokenExpired)
}

func TestAuthUsecase_JWTRefresh_Garbage(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, _ := newAuthUC(users, tokens)

	_, err := uc.JWTRefresh(ctx, "not-a-jwt")

	assert.ErrorIs(t, err, usecase.ErrTokenInvalid)
}

// =====================
// Logout
// =====================

func TestAuthUsecase_Logout_DeactivatesToken(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, _ := newAuthUC(users, tokens)

	tok := validRefreshToken("user-1")
	tokens.On("FindByKey", ctx, tok.Key).Return(tok, nil)
	tokens.On("Deactivate", ctx, "token-1").Return(nil)

	err := uc.Logout(ctx, tok.Key)

	assert.NoError(t, err)
	tokens.AssertCalled(t, "Deactivate", ctx, "token-1")
}

func TestAuthUsecase_Logout_UnknownKey(t *testing.T) {
	ctx := context.Background()

	users := new(MockUserRepository)
	tokens := new(MockAuthTokenRepository)
	uc, _ := newAuthUC(users, tokens)

	// JWTや不明キーはDBに無いので失効できない
	tokens.On("FindByKey", ctx, "unknown").Return(nil, repository.ErrAuthTokenNotFound)

	err := uc.Logout(ctx, "unknown")

	assert.ErrorIs(t, err, usecase.ErrTokenInvalid)
}

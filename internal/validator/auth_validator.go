package validator

import (
	"context"
	"strings"

	"socialdog/internal/usecase"
)

type authValidator struct{}

// Usecaseは interface を依存注入
func NewAuthValidator() usecase.AuthValidator {
	return &authValidator{}
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	username = strings.TrimSpace(username)

	// 必須チェック
	if username == "" || password == "" {
		return usecase.ErrValidation
	}

	return nil
}

// refresh 入力を検証
func (v *authValidator) ValidateRefresh(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return usecase.ErrValidation
	}

	return nil
}

// 会員登録の入力を検証
func (v *authValidator) ValidateRegister(ctx context.Context, username string, password string) error {
	username = strings.TrimSpace(username)

	// 必須チェック
	if username == "" || password == "" {
		return usecase.ErrValidation
	}

	// usernameは150文字まで・空白なし
	if len(username) > 150 || strings.ContainsAny(username, " \t") {
		return usecase.ErrValidation
	}

	// パスワード最低文字数（MVP: 8）
	if len(password) < 8 {
		return usecase.ErrValidation
	}

	return nil
}

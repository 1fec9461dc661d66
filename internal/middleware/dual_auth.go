package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"socialdog/internal/domain/model"
	"socialdog/internal/repository"
	"socialdog/internal/token"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserKey   = "auth_user"   // *model.User
	CtxUserIDKey = "user_id"     // string
	CtxBearerKey = "auth_bearer" // string（生のBearer値）
)

// Bearer認証ミドルウェア。2方式を順に試す：
//   - 不透明トークン（DBのkey検索）
//   - JWT（署名検証、access型のみ）
//
// どちらかが当たれば認証成功。両方外れたら401。
// JWTは"."区切りの複数セグメント、不透明keyは40文字hexなので、
// 形を見て安い方から試す（正しさには影響しない最適化）。
func DualAuth(
	users repository.UserRepository,
	tokens repository.AuthTokenRepository,
	codec *token.Codec,
) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Authorizationヘッダを取得
			authz := c.Request().Header.Get("Authorization")
			if authz == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			// Bearer形式か確認してtokenを抜く
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}
			raw := strings.TrimSpace(parts[1])
			if raw == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			ctx := c.Request().Context()

			var user *model.User
			if strings.Contains(raw, ".") {
				user = resolveSigned(ctx, users, codec, raw)
				if user == nil {
					user = resolveOpaque(ctx, tokens, raw)
				}
			} else {
				user = resolveOpaque(ctx, tokens, raw)
				if user == nil {
					user = resolveSigned(ctx, users, codec, raw)
				}
			}

			if user == nil {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			// contextへ保存
			c.Set(CtxUserKey, user)
			c.Set(CtxUserIDKey, user.ID)
			c.Set(CtxBearerKey, raw)

			return next(c)
		}
	}
}

// 不透明トークン側。keyで引いて有効なら所有ユーザーを返す。
func resolveOpaque(ctx context.Context, tokens repository.AuthTokenRepository, raw string) *model.User {
	tok, err := tokens.FindByKey(ctx, raw)
	if err != nil {
		return nil
	}

	if !tok.IsValid(time.Now()) {
		return nil
	}

	user := tok.User
	return &user
}

// JWT側。署名が正しくaccess型で、ユーザーがまだ居れば返す。
func resolveSigned(ctx context.Context, users repository.UserRepository, codec *token.Codec, raw string) *model.User {
	claims, err := codec.Decode(raw)
	if err != nil {
		return nil
	}

	if claims.TokenType != token.TypeAccess {
		return nil
	}

	user, err := users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil
	}

	return user
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// ミドルウェアが入れたユーザーを取り出すヘルパ
func UserFrom(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(CtxUserKey).(*model.User)
	return u, ok
}

func UserIDFrom(c echo.Context) (string, bool) {
	id, ok := c.Get(CtxUserIDKey).(string)
	return id, ok
}

func BearerFrom(c echo.Context) (string, bool) {
	raw, ok := c.Get(CtxBearerKey).(string)
	return raw, ok
}

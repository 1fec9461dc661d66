package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

// 種別ごとの有効期限（固定）
const (
	AccessTokenTTL  = 4 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	// 署名不正・構造不正・claims欠落
	ErrTokenInvalid = errors.New("token invalid")
	// 署名は正しいが期限切れ
	ErrTokenExpired = errors.New("token expired")
)

// JWTのペイロード {user_id, token_type, iat, exp}
type Claims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// CodecはJWTの発行と検証。DBは使わない（自己完結トークン）。
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// EncodeはHS256で署名したトークン文字列を返す。
func (c *Codec) Encode(userID string, tokenType string, now time.Time) (string, error) {
	ttl := AccessTokenTTL
	if tokenType == TypeRefresh {
		ttl = RefreshTokenTTL
	}

	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decodeは検証して中身を返す。
// 失敗は必ずErrTokenInvalidかErrTokenExpiredのどちらか（panicしない）。
func (c *Codec) Decode(raw string) (*Claims, error) {
	claims := &Claims{}

	t, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if t == nil || !t.Valid {
		return nil, ErrTokenInvalid
	}

	// claims欠落も不正扱い
	if claims.UserID == "" || claims.TokenType == "" {
		return nil, ErrTokenInvalid
	}

	return claims, nil
}

package model

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// 種別ごとの有効期限
const (
	AccessTokenTTL  = 4 * time.Hour
	RefreshTokenTTL = 7 * 24 * time.Hour
)

// DBに保存する不透明トークン。keyがBearer秘密値。
// 1ユーザーにつき同じkindは1つ（unique(user_id, kind)）。
type AuthToken struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	Key       string     `gorm:"type:char(40);not null;uniqueIndex" json:"-"`
	UserID    string     `gorm:"type:uuid;not null;index;uniqueIndex:idx_auth_tokens_user_kind" json:"user_id"`
	User      User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Kind      TokenKind  `gorm:"type:varchar(10);not null;uniqueIndex:idx_auth_tokens_user_kind" json:"kind"`
	Expires   *time.Time `json:"expires"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 新しいトークンを作る。keyとexpiresはここで必ず埋める。
func NewAuthToken(userID string, kind TokenKind, now time.Time) (*AuthToken, error) {
	key, err := generateKey()
	if err != nil {
		return nil, err
	}

	ttl := AccessTokenTTL
	if kind == TokenKindRefresh {
		ttl = RefreshTokenTTL
	}
	expires := now.Add(ttl)

	return &AuthToken{
		ID:       uuid.NewString(),
		Key:      key,
		UserID:   userID,
		Kind:     kind,
		Expires:  &expires,
		IsActive: true,
	}, nil
}

// 20バイトの乱数を40文字のhexにする
func generateKey() (string, error) {
	b := make([]byte, 20)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// expiresがnilなら無期限扱い。境界（now == expires）は期限切れ。
func (t *AuthToken) IsExpired(now time.Time) bool {
	if t.Expires == nil {
		return false
	}
	return !now.Before(*t.Expires)
}

func (t *AuthToken) IsValid(now time.Time) bool {
	return t.IsActive && !t.IsExpired(now)
}

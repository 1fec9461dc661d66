package model

import "time"

// バーク（短い投稿、200文字まで）。
type Bark struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	Message    string    `gorm:"type:varchar(200);not null" json:"message"`
	UserID     string    `gorm:"type:uuid;not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	SniffCount int64     `gorm:"not null;default:0" json:"sniff_count"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

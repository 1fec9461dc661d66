package model

import "time"

// スニフ（バークへのいいね）。同じユーザーは同じバークに1回だけ。
type Sniff struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_sniffs_user_bark" json:"user_id"`
	BarkID    string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_sniffs_user_bark" json:"bark_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

package model

import "time"

// Session is one conversation thread. UpdatedAt doubles as the wire-level
// "timestamp" and is bumped on every append so listing stays recency-ordered.
type Session struct {
	ID          string    `gorm:"primaryKey;size:36" json:"_id"`
	UserID      string    `gorm:"size:64;not null;index" json:"userId"`
	Title       string    `gorm:"size:128;not null" json:"title"`
	LastMessage string    `gorm:"type:text" json:"lastMessage"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"timestamp"`
	Messages    []Message `gorm:"foreignKey:SessionID" json:"messages"`
}

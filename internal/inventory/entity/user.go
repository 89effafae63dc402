package entity

import (
	"time"
)

// User is a snapshot of an identity-provider account, synced on each
// authenticated request so ledger entries can be joined to a username.
type User struct {
	UserID     string    `json:"user_id" gorm:"primaryKey;size:36"`
	Username   string    `json:"username" gorm:"size:100;not null"`
	Email      string    `json:"email,omitempty" gorm:"size:200"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

func (User) TableName() string {
	return "users"
}

package model

import (
	"time"
)

// TokenBlacklist holds revoked access tokens (HMAC of the token, never the raw value).
type TokenBlacklist struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"type:text;not null;unique" json:"-"`
	ExpiredAt time.Time `gorm:"not null" json:"expired_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName pins the table name.
func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}

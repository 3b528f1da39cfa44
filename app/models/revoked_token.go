package models

import "time"

// RevokedToken records a logged-out token id. ExpiresAt lets tokens:prune
// drop rows whose token could no longer validate anyway.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"`
	JTI       string    `gorm:"column:jti;size:36;not null;index"`
	Type      string    `gorm:"size:10;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName keeps the historical table name.
func (RevokedToken) TableName() string { return "token_blocklist" }

package models

// User is an account that can authenticate and place orders.
type User struct {
	ID           uint   `gorm:"primaryKey"                   json:"id"`
	Username     string `gorm:"size:45;uniqueIndex;not null" json:"username"`
	Email        string `gorm:"size:80;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:text;not null"           json:"-"` // bcrypt, never serialised
	IsActive     bool   `gorm:"not null;default:false"       json:"is_active"`
	IsStaff      bool   `gorm:"not null;default:false"       json:"is_staff"`
}

package model

import "time"

// User 收銀員帳號，密碼只存bcrypt hash
type User struct {
	UserID       uint      `gorm:"primaryKey" json:"user_id"`
	Email        string    `gorm:"unique;not null;type:varchar(100)" json:"email"`
	PasswordHash string    `gorm:"not null;type:varchar(255)" json:"-"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
}

// Session 登入狀態，存在redis
type Session struct {
	Token     string    `json:"token"`
	UserID    uint      `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Identity 目前登入者
type Identity struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
}

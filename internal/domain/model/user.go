package model

import "time"

// Telegram WebApp 経由のユーザー。TelegramID が外部との対応キー。
type User struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	TelegramID  int64     `gorm:"not null;uniqueIndex" json:"telegram_id"`
	Username    string    `gorm:"type:varchar(255)" json:"username,omitempty"`
	FirstName   string    `gorm:"type:varchar(255)" json:"first_name,omitempty"`
	LastName    string    `gorm:"type:varchar(255)" json:"last_name,omitempty"`
	Avatar      string    `gorm:"type:text" json:"avatar,omitempty"`
	PhoneNumber string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Balance     int64     `gorm:"not null;default:0" json:"balance"`
	Blocked     bool      `gorm:"not null;default:false" json:"blocked"`
	JoinedAt    time.Time `gorm:"not null;autoCreateTime" json:"join_time"`
}

package models

import (
	"time"
)

type Category struct {
	ID        string    `gorm:"type:uuid;primaryKey"     json:"_id"`
	Name      string    `gorm:"uniqueIndex;not null"     json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Item struct {
	ID          string    `gorm:"type:uuid;primaryKey"     json:"_id"`
	CategoryID  string    `gorm:"type:uuid;index;not null" json:"categoryId"`
	Name        string    `gorm:"not null"                 json:"name"`
	Price       string    `gorm:"not null"                 json:"price"`
	IconDataURL string    `gorm:"not null"                 json:"iconDataUrl"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

type AdminSession struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"       json:"id"`
	SessionID string    `gorm:"type:uuid;uniqueIndex;not null" json:"session_id"`
	IsAdmin   bool      `gorm:"not null"                       json:"is_admin"`
	ExpiresAt int64     `gorm:"not null"                       json:"expires_at"`
	CreatedAt time.Time `json:"-"`
}

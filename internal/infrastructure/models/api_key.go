package models

import (
	"time"

	"gorm.io/gorm"
)

type ApiKey struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	KeyHash    string `gorm:"type:varchar(64);uniqueIndex;not null"` // SHA256 of key
	Name       string `gorm:"type:varchar(100);not null"`
	IsActive   bool   `gorm:"default:true;not null;index"`
	LastUsedAt *time.Time
	ExpiresAt  *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (ApiKey) TableName() string {
	return "api_keys"
}

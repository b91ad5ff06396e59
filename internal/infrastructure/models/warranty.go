package models

import (
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

type Warranty struct {
	ID                   uint      `gorm:"primaryKey;autoIncrement"`
	AssetName            string    `gorm:"type:varchar(255);not null"`
	Category             string    `gorm:"type:varchar(100);not null;index"`
	DatePurchased        time.Time `gorm:"type:date;not null"`
	Cost                 string    `gorm:"type:numeric(10,2);not null"`
	Department           string    `gorm:"type:varchar(100);not null;index"`
	Status               string    `gorm:"type:varchar(50);not null;default:Active;index"`
	UserID               int       `gorm:"not null"`
	UserName             string    `gorm:"type:varchar(255);not null"`
	WarrantyPeriodMonths null.Int
	WarrantyExpiryDate   null.Time `gorm:"type:date"`
	Notes                null.String
	CreatedAt            time.Time
	UpdatedAt            time.Time
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (Warranty) TableName() string {
	return "warranties"
}

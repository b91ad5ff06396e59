package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// WarrantyStatus values accepted for the status column
const (
	WarrantyStatusActive  = "Active"
	WarrantyStatusRetired = "Retired"
)

// Warranty represents a device registered for warranty tracking
type Warranty struct {
	ID                   uint        `json:"id"`
	AssetName            string      `json:"assetName"`
	Category             string      `json:"category"`
	DatePurchased        time.Time   `json:"datePurchased"`
	Cost                 string      `json:"cost"`
	Department           string      `json:"department"`
	Status               string      `json:"status"`
	UserID               int         `json:"userId"`
	UserName             string      `json:"userName"`
	WarrantyPeriodMonths null.Int    `json:"warrantyPeriodMonths,omitempty"`
	WarrantyExpiryDate   null.Time   `json:"warrantyExpiryDate,omitempty"`
	Notes                null.String `json:"notes,omitempty"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
	DeletedAt            *time.Time  `json:"-"`
}

// CreateWarrantyInput represents input for registering a device. Dates are
// plain calendar dates, not timestamps.
type CreateWarrantyInput struct {
	AssetName            string  `json:"assetName" binding:"required,max=255"`
	Category             string  `json:"category" binding:"required,max=100"`
	DatePurchased        string  `json:"datePurchased" binding:"required,datetime=2006-01-02"`
	Cost                 string  `json:"cost" binding:"required"`
	Department           string  `json:"department" binding:"required,max=100"`
	Status               string  `json:"status"`
	UserID               int     `json:"userId" binding:"required"`
	UserName             string  `json:"userName" binding:"required,max=255"`
	WarrantyPeriodMonths *int    `json:"warrantyPeriodMonths,omitempty"`
	WarrantyExpiryDate   *string `json:"warrantyExpiryDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Notes                *string `json:"notes,omitempty"`
}

// UpdateWarrantyInput represents a partial update; nil fields are untouched
type UpdateWarrantyInput struct {
	AssetName            *string `json:"assetName,omitempty" binding:"omitempty,max=255"`
	Category             *string `json:"category,omitempty" binding:"omitempty,max=100"`
	DatePurchased        *string `json:"datePurchased,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Cost                 *string `json:"cost,omitempty"`
	Department           *string `json:"department,omitempty" binding:"omitempty,max=100"`
	Status               *string `json:"status,omitempty"`
	WarrantyPeriodMonths *int    `json:"warrantyPeriodMonths,omitempty"`
	WarrantyExpiryDate   *string `json:"warrantyExpiryDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Notes                *string `json:"notes,omitempty"`
}

// WarrantyFilters narrows warranty listings
type WarrantyFilters struct {
	Skip       int
	Limit      int
	Status     string
	Department string
	Category   string
}

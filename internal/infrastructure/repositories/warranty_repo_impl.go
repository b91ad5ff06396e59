package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"warranty-register.backend/internal/domain/entities"
	domainerrors "warranty-register.backend/internal/domain/errors"
	"warranty-register.backend/internal/infrastructure/models"
)

// WarrantyRepository implements warranty data operations
type WarrantyRepository struct {
	db *gorm.DB
}

// NewWarrantyRepository creates a new warranty repository
func NewWarrantyRepository(db *gorm.DB) *WarrantyRepository {
	return &WarrantyRepository{db: db}
}

// Create inserts a new warranty registration
func (r *WarrantyRepository) Create(ctx context.Context, warranty *entities.Warranty) error {
	m := r.toModel(warranty)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return mapStoreError(err)
	}
	warranty.ID = m.ID
	warranty.Status = m.Status
	warranty.CreatedAt = m.CreatedAt
	warranty.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID returns a non-deleted warranty by id
func (r *WarrantyRepository) GetByID(ctx context.Context, id uint) (*entities.Warranty, error) {
	var m models.Warranty
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapStoreError(err)
	}
	return r.toEntity(&m), nil
}

// List returns non-deleted warranties matching the filters
func (r *WarrantyRepository) List(ctx context.Context, filters entities.WarrantyFilters) ([]*entities.Warranty, error) {
	query := r.db.WithContext(ctx).Model(&models.Warranty{})

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.Department != "" {
		query = query.Where("department = ?", filters.Department)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Skip > 0 {
		query = query.Offset(filters.Skip)
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}

	var warrantyModels []models.Warranty
	if err := query.Find(&warrantyModels).Error; err != nil {
		return nil, mapStoreError(err)
	}

	warranties := make([]*entities.Warranty, 0, len(warrantyModels))
	for _, m := range warrantyModels {
		model := m
		warranties = append(warranties, r.toEntity(&model))
	}
	return warranties, nil
}

// Update persists the mutable warranty fields. A column map is used instead of
// a struct so cleared optional values (null.*) are written through.
func (r *WarrantyRepository) Update(ctx context.Context, warranty *entities.Warranty) error {
	updates := map[string]interface{}{
		"asset_name":             warranty.AssetName,
		"category":               warranty.Category,
		"date_purchased":         warranty.DatePurchased,
		"cost":                   warranty.Cost,
		"department":             warranty.Department,
		"status":                 warranty.Status,
		"warranty_period_months": warranty.WarrantyPeriodMonths,
		"warranty_expiry_date":   warranty.WarrantyExpiryDate,
		"notes":                  warranty.Notes,
	}
	result := r.db.WithContext(ctx).Model(&models.Warranty{}).Where("id = ?", warranty.ID).Updates(updates)
	if result.Error != nil {
		return mapStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// RetireExpired flips Active warranties whose expiry date has passed to
// Retired and reports how many rows changed. Used by the background expiry
// job.
func (r *WarrantyRepository) RetireExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Warranty{}).
		Where("status = ? AND warranty_expiry_date IS NOT NULL AND warranty_expiry_date < ?", entities.WarrantyStatusActive, now).
		Update("status", entities.WarrantyStatusRetired)
	if result.Error != nil {
		return 0, mapStoreError(result.Error)
	}
	return result.RowsAffected, nil
}

// SoftDelete marks a warranty deleted
func (r *WarrantyRepository) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Warranty{}, "id = ?", id)
	if result.Error != nil {
		return mapStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *WarrantyRepository) toModel(e *entities.Warranty) *models.Warranty {
	return &models.Warranty{
		AssetName:            e.AssetName,
		Category:             e.Category,
		DatePurchased:        e.DatePurchased,
		Cost:                 e.Cost,
		Department:           e.Department,
		Status:               e.Status,
		UserID:               e.UserID,
		UserName:             e.UserName,
		WarrantyPeriodMonths: e.WarrantyPeriodMonths,
		WarrantyExpiryDate:   e.WarrantyExpiryDate,
		Notes:                e.Notes,
	}
}

func (r *WarrantyRepository) toEntity(m *models.Warranty) *entities.Warranty {
	e := &entities.Warranty{
		ID:                   m.ID,
		AssetName:            m.AssetName,
		Category:             m.Category,
		DatePurchased:        m.DatePurchased,
		Cost:                 m.Cost,
		Department:           m.Department,
		Status:               m.Status,
		UserID:               m.UserID,
		UserName:             m.UserName,
		WarrantyPeriodMonths: m.WarrantyPeriodMonths,
		WarrantyExpiryDate:   m.WarrantyExpiryDate,
		Notes:                m.Notes,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		e.DeletedAt = &t
	}
	return e
}

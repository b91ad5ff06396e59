package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"warranty-register.backend/internal/domain/entities"
	domainerrors "warranty-register.backend/internal/domain/errors"
	"warranty-register.backend/internal/infrastructure/models"
)

// ApiKeyRepository implements API key data operations
type ApiKeyRepository struct {
	db *gorm.DB
}

// NewApiKeyRepository creates a new API key repository
func NewApiKeyRepository(db *gorm.DB) *ApiKeyRepository {
	return &ApiKeyRepository{db: db}
}

// mapStoreError translates gorm errors to the domain taxonomy at the store
// boundary: record-not-found stays a business outcome, everything else is a
// transient store failure the caller may retry.
func mapStoreError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domainerrors.ErrNotFound
	}
	return fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
}

// Create inserts a new API key row and copies back the assigned id and
// timestamps
func (r *ApiKeyRepository) Create(ctx context.Context, apiKey *entities.ApiKey) error {
	m := &models.ApiKey{
		KeyHash:   apiKey.KeyHash,
		Name:      apiKey.Name,
		IsActive:  true,
		ExpiresAt: apiKey.ExpiresAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return mapStoreError(err)
	}
	apiKey.ID = m.ID
	apiKey.IsActive = m.IsActive
	apiKey.CreatedAt = m.CreatedAt
	apiKey.UpdatedAt = m.UpdatedAt
	return nil
}

// FindByKeyHash returns the unique active, non-deleted record matching the
// hash. This is the per-request hot path; key_hash carries a unique index.
// Inactive keys are filtered at the query level, so they surface as ErrNotFound.
func (r *ApiKeyRepository) FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("key_hash = ? AND is_active = ?", keyHash, true).First(&m).Error; err != nil {
		return nil, mapStoreError(err)
	}
	return r.toEntity(&m), nil
}

// FindByID returns any non-deleted record regardless of the active flag;
// used by admin management.
func (r *ApiKeyRepository) FindByID(ctx context.Context, id uint) (*entities.ApiKey, error) {
	var m models.ApiKey
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapStoreError(err)
	}
	return r.toEntity(&m), nil
}

// List returns non-deleted keys newest first, filtering out inactive ones
// unless requested
func (r *ApiKeyRepository) List(ctx context.Context, includeInactive bool) ([]*entities.ApiKey, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var keyModels []models.ApiKey
	if err := query.Find(&keyModels).Error; err != nil {
		return nil, mapStoreError(err)
	}

	keys := make([]*entities.ApiKey, 0, len(keyModels))
	for _, m := range keyModels {
		model := m
		keys = append(keys, r.toEntity(&model))
	}
	return keys, nil
}

// SetActive toggles the active flag and returns the updated record
func (r *ApiKeyRepository) SetActive(ctx context.Context, id uint, active bool) (*entities.ApiKey, error) {
	result := r.db.WithContext(ctx).Model(&models.ApiKey{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  active,
		"updated_at": time.Now().UTC(),
	})
	if result.Error != nil {
		return nil, mapStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}
	return r.FindByID(ctx, id)
}

// TouchLastUsed records a successful verification. Advisory telemetry only;
// concurrent writers may race and the last one wins.
func (r *ApiKeyRepository) TouchLastUsed(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Model(&models.ApiKey{}).Where("id = ?", id).Update("last_used_at", time.Now().UTC())
	if result.Error != nil {
		return mapStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// SoftDelete marks the key deleted and clears the active flag. The row is kept
// for audit and excluded from all lookups.
func (r *ApiKeyRepository) SoftDelete(ctx context.Context, id uint) (*entities.ApiKey, error) {
	result := r.db.WithContext(ctx).Model(&models.ApiKey{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return nil, mapStoreError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domainerrors.ErrNotFound
	}

	if err := r.db.WithContext(ctx).Delete(&models.ApiKey{}, "id = ?", id).Error; err != nil {
		return nil, mapStoreError(err)
	}

	var m models.ApiKey
	if err := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&m).Error; err != nil {
		return nil, mapStoreError(err)
	}
	return r.toEntity(&m), nil
}

func (r *ApiKeyRepository) toEntity(m *models.ApiKey) *entities.ApiKey {
	e := &entities.ApiKey{
		ID:         m.ID,
		KeyHash:    m.KeyHash,
		Name:       m.Name,
		IsActive:   m.IsActive,
		LastUsedAt: m.LastUsedAt,
		ExpiresAt:  m.ExpiresAt,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.DeletedAt.Valid {
		t := m.DeletedAt.Time
		e.DeletedAt = &t
	}
	return e
}

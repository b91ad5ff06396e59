package repositories

import (
	"context"

	"warranty-register.backend/internal/domain/entities"
)

// WarrantyRepository persists warranty registrations
type WarrantyRepository interface {
	Create(ctx context.Context, warranty *entities.Warranty) error
	GetByID(ctx context.Context, id uint) (*entities.Warranty, error)
	List(ctx context.Context, filters entities.WarrantyFilters) ([]*entities.Warranty, error)
	Update(ctx context.Context, warranty *entities.Warranty) error
	SoftDelete(ctx context.Context, id uint) error
}

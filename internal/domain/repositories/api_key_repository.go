package repositories

import (
	"context"

	"warranty-register.backend/internal/domain/entities"
)

// ApiKeyRepository persists API key credentials. FindByKeyHash is the hot path
// executed on every authenticated request and filters on active, non-deleted
// rows at the query level, so an inactive key is indistinguishable from a
// missing one to callers. All errors other than ErrNotFound are translated to
// ErrStoreUnavailable at this boundary.
type ApiKeyRepository interface {
	Create(ctx context.Context, apiKey *entities.ApiKey) error
	FindByKeyHash(ctx context.Context, keyHash string) (*entities.ApiKey, error)
	FindByID(ctx context.Context, id uint) (*entities.ApiKey, error)
	List(ctx context.Context, includeInactive bool) ([]*entities.ApiKey, error)
	SetActive(ctx context.Context, id uint, active bool) (*entities.ApiKey, error)
	TouchLastUsed(ctx context.Context, id uint) error
	SoftDelete(ctx context.Context, id uint) (*entities.ApiKey, error)
}

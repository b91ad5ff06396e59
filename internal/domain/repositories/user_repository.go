package repositories

import (
	"context"

	"warranty-register.backend/internal/domain/entities"
)

// UserRepository persists Warranty Centre login accounts
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uint) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

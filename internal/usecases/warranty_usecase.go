package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"warranty-register.backend/internal/domain/entities"
	domainerrors "warranty-register.backend/internal/domain/errors"
	"warranty-register.backend/internal/domain/repositories"
	"warranty-register.backend/pkg/logger"
)

const dateLayout = "2006-01-02"

// WarrantyUsecase handles device warranty registrations
type WarrantyUsecase struct {
	warrantyRepo repositories.WarrantyRepository
}

func NewWarrantyUsecase(warrantyRepo repositories.WarrantyRepository) *WarrantyUsecase {
	return &WarrantyUsecase{warrantyRepo: warrantyRepo}
}

// Register creates a new warranty record for a device
func (u *WarrantyUsecase) Register(ctx context.Context, input *entities.CreateWarrantyInput) (*entities.Warranty, error) {
	datePurchased, err := time.Parse(dateLayout, input.DatePurchased)
	if err != nil {
		return nil, domainerrors.BadRequest("datePurchased must be a YYYY-MM-DD date")
	}

	status := input.Status
	if status == "" {
		status = entities.WarrantyStatusActive
	}

	warranty := &entities.Warranty{
		AssetName:     input.AssetName,
		Category:      input.Category,
		DatePurchased: datePurchased,
		Cost:          input.Cost,
		Department:    input.Department,
		Status:        status,
		UserID:        input.UserID,
		UserName:      input.UserName,
	}
	if input.WarrantyPeriodMonths != nil {
		warranty.WarrantyPeriodMonths = null.IntFrom(*input.WarrantyPeriodMonths)
	}
	if input.WarrantyExpiryDate != nil {
		expiry, err := time.Parse(dateLayout, *input.WarrantyExpiryDate)
		if err != nil {
			return nil, domainerrors.BadRequest("warrantyExpiryDate must be a YYYY-MM-DD date")
		}
		warranty.WarrantyExpiryDate = null.TimeFrom(expiry)
	}
	if input.Notes != nil {
		warranty.Notes = null.StringFrom(*input.Notes)
	}

	if err := u.warrantyRepo.Create(ctx, warranty); err != nil {
		return nil, err
	}

	logger.Info(ctx, "warranty registered",
		zap.Uint("warrantyId", warranty.ID),
		zap.String("assetName", warranty.AssetName),
		zap.String("department", warranty.Department),
	)
	return warranty, nil
}

// List returns warranties matching the filters
func (u *WarrantyUsecase) List(ctx context.Context, filters entities.WarrantyFilters) ([]*entities.Warranty, error) {
	if filters.Limit <= 0 {
		filters.Limit = 100
	}
	if filters.Limit > 1000 {
		filters.Limit = 1000
	}
	return u.warrantyRepo.List(ctx, filters)
}

// Get returns a warranty by id
func (u *WarrantyUsecase) Get(ctx context.Context, id uint) (*entities.Warranty, error) {
	warranty, err := u.warrantyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Warranty not found")
		}
		return nil, err
	}
	return warranty, nil
}

// Update applies a partial update to an existing warranty
func (u *WarrantyUsecase) Update(ctx context.Context, id uint, input *entities.UpdateWarrantyInput) (*entities.Warranty, error) {
	warranty, err := u.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.AssetName != nil {
		warranty.AssetName = *input.AssetName
	}
	if input.Category != nil {
		warranty.Category = *input.Category
	}
	if input.DatePurchased != nil {
		datePurchased, err := time.Parse(dateLayout, *input.DatePurchased)
		if err != nil {
			return nil, domainerrors.BadRequest("datePurchased must be a YYYY-MM-DD date")
		}
		warranty.DatePurchased = datePurchased
	}
	if input.Cost != nil {
		warranty.Cost = *input.Cost
	}
	if input.Department != nil {
		warranty.Department = *input.Department
	}
	if input.Status != nil {
		warranty.Status = *input.Status
	}
	if input.WarrantyPeriodMonths != nil {
		warranty.WarrantyPeriodMonths = null.IntFrom(*input.WarrantyPeriodMonths)
	}
	if input.WarrantyExpiryDate != nil {
		expiry, err := time.Parse(dateLayout, *input.WarrantyExpiryDate)
		if err != nil {
			return nil, domainerrors.BadRequest("warrantyExpiryDate must be a YYYY-MM-DD date")
		}
		warranty.WarrantyExpiryDate = null.TimeFrom(expiry)
	}
	if input.Notes != nil {
		warranty.Notes = null.StringFrom(*input.Notes)
	}

	if err := u.warrantyRepo.Update(ctx, warranty); err != nil {
		return nil, err
	}
	return warranty, nil
}

// Delete soft-deletes a warranty
func (u *WarrantyUsecase) Delete(ctx context.Context, id uint) error {
	if err := u.warrantyRepo.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Warranty not found")
		}
		return err
	}
	return nil
}

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"warranty-register.backend/internal/domain/entities"
	domainerrors "warranty-register.backend/internal/domain/errors"
)

func testWarranty(name, department, category string) *entities.Warranty {
	return &entities.Warranty{
		AssetName:     name,
		Category:      category,
		DatePurchased: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		Cost:          "1499.99",
		Department:    department,
		Status:        entities.WarrantyStatusActive,
		UserID:        7,
		UserName:      "T. Moyo",
	}
}

func TestWarrantyRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createWarrantyTable(t, db)
	repo := NewWarrantyRepository(db)
	ctx := context.Background()

	w := testWarranty("ThinkPad T14", "IT", "Laptop")
	w.WarrantyPeriodMonths = null.IntFrom(24)
	w.Notes = null.StringFrom("extended coverage")
	require.NoError(t, repo.Create(ctx, w))
	require.NotZero(t, w.ID)

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.Equal(t, "ThinkPad T14", got.AssetName)
	require.Equal(t, 24, got.WarrantyPeriodMonths.Int)
	require.Equal(t, "extended coverage", got.Notes.String)
}

func TestWarrantyRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	createWarrantyTable(t, db)
	repo := NewWarrantyRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testWarranty("Printer", "Finance", "Peripheral")))
	require.NoError(t, repo.Create(ctx, testWarranty("Monitor", "IT", "Peripheral")))
	retired := testWarranty("Old Server", "IT", "Server")
	retired.Status = entities.WarrantyStatusRetired
	require.NoError(t, repo.Create(ctx, retired))

	byDept, err := repo.List(ctx, entities.WarrantyFilters{Department: "IT"})
	require.NoError(t, err)
	require.Len(t, byDept, 2)

	byStatus, err := repo.List(ctx, entities.WarrantyFilters{Status: entities.WarrantyStatusRetired})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	require.Equal(t, "Old Server", byStatus[0].AssetName)

	byCategory, err := repo.List(ctx, entities.WarrantyFilters{Category: "Peripheral", Limit: 1})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
}

func TestWarrantyRepository_RetireExpired(t *testing.T) {
	db := newTestDB(t)
	createWarrantyTable(t, db)
	repo := NewWarrantyRepository(db)
	ctx := context.Background()

	expired := testWarranty("Old Laptop", "IT", "Laptop")
	expired.WarrantyExpiryDate = null.TimeFrom(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, expired))

	covered := testWarranty("New Laptop", "IT", "Laptop")
	covered.WarrantyExpiryDate = null.TimeFrom(time.Now().UTC().AddDate(1, 0, 0))
	require.NoError(t, repo.Create(ctx, covered))

	// no expiry date means coverage never lapses automatically
	openEnded := testWarranty("Desk Phone", "IT", "Phone")
	require.NoError(t, repo.Create(ctx, openEnded))

	retired, err := repo.RetireExpired(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Equal(t, int64(1), retired)

	got, err := repo.GetByID(ctx, expired.ID)
	require.NoError(t, err)
	require.Equal(t, entities.WarrantyStatusRetired, got.Status)

	got, err = repo.GetByID(ctx, covered.ID)
	require.NoError(t, err)
	require.Equal(t, entities.WarrantyStatusActive, got.Status)

	// second run is a no-op
	retired, err = repo.RetireExpired(ctx, time.Now().UTC())
	require.NoError(t, err)
	require.Zero(t, retired)
}

func TestWarrantyRepository_UpdateAndSoftDelete(t *testing.T) {
	db := newTestDB(t)
	createWarrantyTable(t, db)
	repo := NewWarrantyRepository(db)
	ctx := context.Background()

	w := testWarranty("Router", "IT", "Network")
	require.NoError(t, repo.Create(ctx, w))

	w.Status = entities.WarrantyStatusRetired
	w.Notes = null.StringFrom("decommissioned")
	require.NoError(t, repo.Update(ctx, w))

	got, err := repo.GetByID(ctx, w.ID)
	require.NoError(t, err)
	require.Equal(t, entities.WarrantyStatusRetired, got.Status)
	require.Equal(t, "decommissioned", got.Notes.String)

	require.NoError(t, repo.SoftDelete(ctx, w.ID))
	_, err = repo.GetByID(ctx, w.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	require.ErrorIs(t, repo.SoftDelete(ctx, w.ID), domainerrors.ErrNotFound)
	require.ErrorIs(t, repo.Update(ctx, w), domainerrors.ErrNotFound)
}

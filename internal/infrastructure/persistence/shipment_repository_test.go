package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipbatch/backend/internal/domain/shipping"
)

func newTestShipment(t *testing.T, batchID uuid.UUID, rowNumber int) shipping.Shipment {
	t.Helper()
	s, err := shipping.NewShipment(batchID, rowNumber)
	require.NoError(t, err)
	s.To = shipping.Address{
		FirstName:    "John",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62704",
	}
	s.From = shipping.Address{
		FirstName:    "Acme Fulfillment",
		AddressLine1: "9 Warehouse Rd",
		City:         "Chicago",
		State:        "IL",
		ZipCode:      "60601",
	}
	require.NoError(t, s.SetPackage(shipping.Package{
		Length:    decimal.NewFromInt(10),
		Width:     decimal.NewFromInt(6),
		Height:    decimal.NewFromInt(4),
		WeightLbs: 1,
		WeightOz:  2,
	}))
	s.Revalidate()
	return *s
}

func TestGormShipmentRepository_CreateAllAndFindByBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormShipmentRepository(db)
	ctx := context.Background()

	batchID := uuid.New()
	shipments := []shipping.Shipment{
		newTestShipment(t, batchID, 5),
		newTestShipment(t, batchID, 3),
		newTestShipment(t, batchID, 4),
	}
	require.NoError(t, repo.CreateAll(ctx, shipments))

	found, err := repo.FindByBatch(ctx, batchID)
	require.NoError(t, err)
	require.Len(t, found, 3)

	// Ordered by row number
	assert.Equal(t, 3, found[0].RowNumber)
	assert.Equal(t, 4, found[1].RowNumber)
	assert.Equal(t, 5, found[2].RowNumber)
	assert.Equal(t, shipping.ValidationStatusValid, found[0].ValidationStatus)
}

func TestGormShipmentRepository_RoundTripsReviewsAndMessages(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormShipmentRepository(db)
	ctx := context.Background()

	s := newTestShipment(t, uuid.New(), 3)
	s.To.FirstName = ""
	s.Revalidate()
	require.NoError(t, s.RecordAddressReview(shipping.AddressZoneTo, shipping.AddressReview{
		Valid:      true,
		Provider:   "smarty",
		Confidence: "high",
		Normalized: &shipping.Address{AddressLine1: "1 MAIN ST", City: "SPRINGFIELD", State: "IL", ZipCode: "62704-1234"},
	}))
	require.NoError(t, repo.Save(ctx, &s))

	found, err := repo.FindByID(ctx, s.ID)
	require.NoError(t, err)

	assert.Equal(t, shipping.ValidationStatusInvalid, found.ValidationStatus)
	assert.NotEmpty(t, found.ValidationErrors)
	require.NotNil(t, found.ToAddressReview)
	assert.Equal(t, "smarty", found.ToAddressReview.Provider)
	require.NotNil(t, found.ToAddressReview.Normalized)
	assert.Equal(t, "62704-1234", found.ToAddressReview.Normalized.ZipCode)
	assert.True(t, found.ToAddressValidated)
	assert.Nil(t, found.FromAddressReview)
}

func TestGormShipmentRepository_FindByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormShipmentRepository(db)
	ctx := context.Background()

	batchID := uuid.New()
	a := newTestShipment(t, batchID, 3)
	b := newTestShipment(t, batchID, 4)
	require.NoError(t, repo.CreateAll(ctx, []shipping.Shipment{a, b}))

	found, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	// Unknown IDs are simply absent; callers compare counts
	assert.Len(t, found, 2)

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormShipmentRepository_DeleteByBatchAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormShipmentRepository(db)
	ctx := context.Background()

	batchID := uuid.New()
	otherBatchID := uuid.New()
	require.NoError(t, repo.CreateAll(ctx, []shipping.Shipment{
		newTestShipment(t, batchID, 3),
		newTestShipment(t, batchID, 4),
		newTestShipment(t, otherBatchID, 3),
	}))

	count, err := repo.CountByBatch(ctx, batchID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.DeleteByBatch(ctx, batchID))

	count, err = repo.CountByBatch(ctx, batchID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	count, err = repo.CountByBatch(ctx, otherBatchID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

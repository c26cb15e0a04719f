package shipping

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipbatch/backend/internal/domain/shared"
	"github.com/shipbatch/backend/internal/domain/shipping"
)

func TestShipmentService_UpdateAddressDropsStaleReview(t *testing.T) {
	env := newTestEnv(t)
	svc := NewShipmentService(env.batches, env.shipments, env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "0")
	_, shipments := env.seedBatch(t, user.ID, 1)

	// Record a review so the edit has something to invalidate
	target := shipments[0]
	require.NoError(t, target.RecordAddressReview(shipping.AddressZoneTo, shipping.AddressReview{
		Valid: true, Provider: "smarty", Confidence: "high",
	}))
	require.NoError(t, env.shipments.Save(ctx, &target))

	updated, err := svc.UpdateAddress(ctx, UpdateAddressRequest{
		OwnerID:    user.ID,
		ShipmentID: target.ID,
		Zone:       shipping.AddressZoneTo,
		Address: shipping.Address{
			FirstName:    "Jane",
			AddressLine1: "2 Elm St",
			City:         "Springfield",
			State:        "IL",
			ZipCode:      "62704",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "2 Elm St", updated.To.AddressLine1)
	assert.Equal(t, shipping.ValidationStatusValid, updated.ValidationStatus)
	assert.False(t, updated.ToAddressValidated)
	assert.Nil(t, updated.ToAddressReview)
}

func TestShipmentService_UpdatePackageRevalidates(t *testing.T) {
	env := newTestEnv(t)
	svc := NewShipmentService(env.batches, env.shipments, env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "0")
	_, shipments := env.seedBatch(t, user.ID, 1)

	updated, err := svc.UpdatePackage(ctx, UpdatePackageRequest{
		OwnerID:    user.ID,
		ShipmentID: shipments[0].ID,
		Package: shipping.Package{
			Length: decimal.NewFromInt(12), Width: decimal.NewFromInt(8), Height: decimal.NewFromInt(6),
			WeightLbs: 0, WeightOz: 0,
		},
	})
	require.NoError(t, err)

	// Zero weight downgrades the row to a warning
	assert.Equal(t, shipping.ValidationStatusWarning, updated.ValidationStatus)
	assert.NotEmpty(t, updated.ValidationWarnings)
}

func TestShipmentService_UpdateReference(t *testing.T) {
	env := newTestEnv(t)
	svc := NewShipmentService(env.batches, env.shipments, env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "0")
	_, shipments := env.seedBatch(t, user.ID, 1)

	updated, err := svc.UpdateReference(ctx, UpdateReferenceRequest{
		OwnerID:     user.ID,
		ShipmentID:  shipments[0].ID,
		Phone1:      "555-0100",
		OrderNumber: "ORD-99",
		ItemSKU:     "SKU-42",
	})
	require.NoError(t, err)
	assert.Equal(t, "ORD-99", updated.OrderNumber)
	assert.Equal(t, "SKU-42", updated.ItemSKU)
}

func TestShipmentService_EditsRejectedOnceCancelled(t *testing.T) {
	env := newTestEnv(t)
	svc := NewShipmentService(env.batches, env.shipments, env.uow)
	batchSvc := NewBatchService(env.batches, env.shipments, env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "0")
	batch, shipments := env.seedBatch(t, user.ID, 1)

	_, err := batchSvc.Cancel(ctx, user.ID, batch.ID)
	require.NoError(t, err)

	_, err = svc.UpdateReference(ctx, UpdateReferenceRequest{
		OwnerID:    user.ID,
		ShipmentID: shipments[0].ID,
		Phone1:     "555-0100",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestShipmentService_DeleteRecomputesTotals(t *testing.T) {
	env := newTestEnv(t)
	svc := NewShipmentService(env.batches, env.shipments, env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "0")
	batch, shipments := env.seedBatch(t, user.ID, 2)
	priceBatchForPurchase(t, env, shipments, "5.00")

	require.NoError(t, svc.Delete(ctx, user.ID, shipments[0].ID))

	storedBatch, err := env.batches.FindByID(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, storedBatch.TotalShipments)
	assert.True(t, storedBatch.TotalCost.Equal(decimal.RequireFromString("5.00")))
}

func TestShipmentService_GetScopesToOwner(t *testing.T) {
	env := newTestEnv(t)
	svc := NewShipmentService(env.batches, env.shipments, env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "0")
	_, shipments := env.seedBatch(t, user.ID, 1)

	found, err := svc.Get(ctx, user.ID, shipments[0].ID)
	require.NoError(t, err)
	assert.Equal(t, shipments[0].ID, found.ID)

	rival := env.seedUserNamed(t, "rival", "0")
	_, err = svc.Get(ctx, rival.ID, shipments[0].ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

package shipping

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipbatch/backend/internal/domain/shared"
	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/addressval"
)

// With no external providers configured the chain settles on the
// heuristic fallback, which makes these tests deterministic.
func newFallbackChain() *addressval.Chain {
	return addressval.NewChain(nil)
}

func TestAddressService_ValidateBatchAddresses(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAddressService(env.batches, env.shipments, newFallbackChain())
	ctx := context.Background()

	user := env.seedUser(t, "0")
	batch, shipments := env.seedBatch(t, user.ID, 2)

	// Break one recipient ZIP so the fallback rejects it
	shipments[1].To.ZipCode = "not-a-zip"
	require.NoError(t, env.shipments.Save(ctx, &shipments[1]))

	result, err := svc.ValidateBatchAddresses(ctx, user.ID, batch.ID, shipping.AddressZoneTo)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Validated)
	assert.Equal(t, 1, result.Confirmed)
	assert.Equal(t, 1, result.Rejected)

	stored, err := env.shipments.FindByBatch(ctx, batch.ID)
	require.NoError(t, err)

	require.NotNil(t, stored[0].ToAddressReview)
	assert.Equal(t, "basic", stored[0].ToAddressReview.Provider)
	assert.Equal(t, addressval.ConfidenceLow, stored[0].ToAddressReview.Confidence)
	assert.NotEmpty(t, stored[0].ToAddressReview.Disclaimer)
	assert.True(t, stored[0].ToAddressValidated)

	require.NotNil(t, stored[1].ToAddressReview)
	assert.False(t, stored[1].ToAddressReview.Valid)
	assert.False(t, stored[1].ToAddressValidated)

	// The from zone was not touched
	assert.Nil(t, stored[0].FromAddressReview)
}

func TestAddressService_ValidateShipmentAddress(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAddressService(env.batches, env.shipments, newFallbackChain())
	ctx := context.Background()

	user := env.seedUser(t, "0")
	_, shipments := env.seedBatch(t, user.ID, 1)

	updated, err := svc.ValidateShipmentAddress(ctx, user.ID, shipments[0].ID, shipping.AddressZoneFrom)
	require.NoError(t, err)
	require.NotNil(t, updated.FromAddressReview)
	assert.True(t, updated.FromAddressValidated)
	assert.Equal(t, "basic", updated.FromAddressReview.Provider)
}

func TestAddressService_ScopesToOwner(t *testing.T) {
	env := newTestEnv(t)
	svc := NewAddressService(env.batches, env.shipments, newFallbackChain())
	ctx := context.Background()

	user := env.seedUser(t, "0")
	batch, _ := env.seedBatch(t, user.ID, 1)

	rival := env.seedUserNamed(t, "rival", "0")
	_, err := svc.ValidateBatchAddresses(ctx, rival.ID, batch.ID, shipping.AddressZoneTo)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

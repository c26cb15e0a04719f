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

func TestPricingService_CalculateCosts(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPricingService(env.services, env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "0")
	env.seedService(t, "Ground Saver", shipping.ServiceTypeGround, "4.00", "0.10")
	env.seedService(t, "Priority Plus", shipping.ServiceTypePriority, "8.00", "0.20")
	inactive := env.seedService(t, "Old Promo", shipping.ServiceTypeGround, "1.00", "0.01")
	inactive.Deactivate()
	require.NoError(t, env.services.Save(ctx, inactive))

	batch, shipments := env.seedBatch(t, user.ID, 3)

	// Make one row invalid so it is skipped
	shipments[2].To.FirstName = ""
	shipments[2].Revalidate()
	require.NoError(t, env.shipments.Save(ctx, &shipments[2]))

	result, err := svc.CalculateCosts(ctx, user.ID, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.PricedShipments)
	assert.Equal(t, 1, result.SkippedShipments)

	stored, err := env.shipments.FindByBatch(ctx, batch.ID)
	require.NoError(t, err)

	// 24 oz at the cheapest active service: 4.00 + 0.10*24 = 6.40
	assert.Equal(t, "Ground Saver", stored[0].ServiceName)
	assert.True(t, stored[0].ShippingCost.Equal(decimal.RequireFromString("6.40")))
	assert.Empty(t, stored[2].ServiceName)

	assert.True(t, result.Batch.TotalCost.Equal(decimal.RequireFromString("12.80")))
	assert.Equal(t, 3, result.Batch.TotalShipments)
}

func TestPricingService_CalculateCostsPricesWarningRows(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPricingService(env.services, env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "0")
	env.seedService(t, "Ground Saver", shipping.ServiceTypeGround, "4.00", "0.10")

	batch, shipments := env.seedBatch(t, user.ID, 1)

	// A missing sender address downgrades the row to warning, not invalid
	shipments[0].From = shipping.Address{}
	shipments[0].Revalidate()
	require.Equal(t, shipping.ValidationStatusWarning, shipments[0].ValidationStatus)
	require.NoError(t, env.shipments.Save(ctx, &shipments[0]))

	result, err := svc.CalculateCosts(ctx, user.ID, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.PricedShipments)
	assert.Equal(t, 0, result.SkippedShipments)
}

func TestPricingService_CalculateCostsNoActiveServices(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPricingService(env.services, env.uow)

	user := env.seedUser(t, "0")
	batch, _ := env.seedBatch(t, user.ID, 1)

	_, err := svc.CalculateCosts(context.Background(), user.ID, batch.ID)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SERVICE_NOT_FOUND", domainErr.Code)
}

func TestPricingService_Quote(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPricingService(env.services, env.uow)
	ctx := context.Background()

	env.seedService(t, "Priority Plus", shipping.ServiceTypePriority, "8.00", "0.20")

	quote, err := svc.Quote(ctx, QuoteRequest{ServiceName: "Priority Plus", WeightLbs: 1, WeightOz: 8})
	require.NoError(t, err)
	assert.Equal(t, 24, quote.TotalWeightOz)
	assert.True(t, quote.Price.Equal(decimal.RequireFromString("12.80")))

	_, err = svc.Quote(ctx, QuoteRequest{ServiceName: "Nonexistent", WeightLbs: 1})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPricingService_QuoteInactiveService(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPricingService(env.services, env.uow)
	ctx := context.Background()

	old := env.seedService(t, "Old Promo", shipping.ServiceTypeGround, "1.00", "0.01")
	old.Deactivate()
	require.NoError(t, env.services.Save(ctx, old))

	_, err := svc.Quote(ctx, QuoteRequest{ServiceName: "Old Promo", WeightLbs: 1})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "SERVICE_NOT_FOUND", domainErr.Code)
}

func TestPricingService_ListActiveServices(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPricingService(env.services, env.uow)
	ctx := context.Background()

	env.seedService(t, "Priority Plus", shipping.ServiceTypePriority, "8.00", "0.20")
	env.seedService(t, "Ground Saver", shipping.ServiceTypeGround, "4.00", "0.10")
	inactive := env.seedService(t, "Old Promo", shipping.ServiceTypeGround, "1.00", "0.01")
	inactive.Deactivate()
	require.NoError(t, env.services.Save(ctx, inactive))

	services, err := svc.ListActiveServices(ctx)
	require.NoError(t, err)
	require.Len(t, services, 2)
	// Cheapest first
	assert.Equal(t, "Ground Saver", services[0].Name)
}

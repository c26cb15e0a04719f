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

func priceBatchForPurchase(t *testing.T, env *testEnv, shipments []shipping.Shipment, unitPrice string) decimal.Decimal {
	t.Helper()
	ctx := context.Background()
	price := decimal.RequireFromString(unitPrice)
	total := decimal.Zero
	for i := range shipments {
		require.NoError(t, shipments[i].AssignService("Ground Saver", price))
		total = total.Add(price)
	}
	require.NoError(t, env.shipments.SaveAll(ctx, shipments))
	return total
}

func TestPurchaseService_Purchase(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPurchaseService(env.purchases, env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "100.00")
	batch, shipments := env.seedBatch(t, user.ID, 3)
	total := priceBatchForPurchase(t, env, shipments, "7.50")

	result, err := svc.Purchase(ctx, PurchaseRequest{
		OwnerID:       user.ID,
		BatchID:       batch.ID,
		LabelSize:     shipping.LabelSizeThermal,
		TermsAccepted: true,
	})
	require.NoError(t, err)

	assert.True(t, result.Purchase.TotalAmount.Equal(total))
	assert.Equal(t, 3, result.Purchase.TotalLabels)
	assert.Equal(t, shipping.LabelSizeThermal, result.Purchase.LabelSize)
	assert.NotEmpty(t, result.Purchase.ArtifactRef)
	assert.Equal(t, shipping.BatchStatusPurchased, result.Batch.Status)
	assert.NotNil(t, result.Batch.PurchasedAt)
	assert.True(t, result.BalanceAfter.Equal(decimal.RequireFromString("77.50")))

	// The debit is persisted, not just returned
	stored, err := env.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(decimal.RequireFromString("77.50")))
}

func TestPurchaseService_PurchaseTwiceFails(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPurchaseService(env.purchases, env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "100.00")
	batch, shipments := env.seedBatch(t, user.ID, 2)
	priceBatchForPurchase(t, env, shipments, "5.00")

	req := PurchaseRequest{
		OwnerID:       user.ID,
		BatchID:       batch.ID,
		LabelSize:     shipping.LabelSizeLetter,
		TermsAccepted: true,
	}
	_, err := svc.Purchase(ctx, req)
	require.NoError(t, err)

	_, err = svc.Purchase(ctx, req)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)

	// Only the first debit happened
	stored, err := env.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(decimal.RequireFromString("90.00")))
}

func TestPurchaseService_InsufficientBalance(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPurchaseService(env.purchases, env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "10.00")
	batch, shipments := env.seedBatch(t, user.ID, 3)
	priceBatchForPurchase(t, env, shipments, "7.50")

	_, err := svc.Purchase(ctx, PurchaseRequest{
		OwnerID:       user.ID,
		BatchID:       batch.ID,
		LabelSize:     shipping.LabelSizeLetter,
		TermsAccepted: true,
	})
	require.Error(t, err)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_BALANCE", domainErr.Code)
	assert.Equal(t, "22.50", domainErr.Details["required"])
	assert.Equal(t, "10.00", domainErr.Details["available"])

	// Nothing was committed: balance and batch state are untouched
	stored, err := env.users.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(decimal.RequireFromString("10.00")))

	storedBatch, err := env.batches.FindByID(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, shipping.BatchStatusReviewing, storedBatch.Status)
}

func TestPurchaseService_TermsMustBeAccepted(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPurchaseService(env.purchases, env.uow)

	user := env.seedUser(t, "100.00")
	batch, shipments := env.seedBatch(t, user.ID, 1)
	priceBatchForPurchase(t, env, shipments, "5.00")

	_, err := svc.Purchase(context.Background(), PurchaseRequest{
		OwnerID:       user.ID,
		BatchID:       batch.ID,
		LabelSize:     shipping.LabelSizeLetter,
		TermsAccepted: false,
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TERMS_NOT_ACCEPTED", domainErr.Code)
}

func TestPurchaseService_EmptyBatch(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPurchaseService(env.purchases, env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "100.00")
	batch, _ := env.seedBatch(t, user.ID, 1)
	require.NoError(t, env.shipments.DeleteByBatch(ctx, batch.ID))

	_, err := svc.Purchase(ctx, PurchaseRequest{
		OwnerID:       user.ID,
		BatchID:       batch.ID,
		LabelSize:     shipping.LabelSizeLetter,
		TermsAccepted: true,
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_BATCH", domainErr.Code)
}

func TestPurchaseService_ListAndGet(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPurchaseService(env.purchases, env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "100.00")
	batch, shipments := env.seedBatch(t, user.ID, 1)
	priceBatchForPurchase(t, env, shipments, "5.00")

	result, err := svc.Purchase(ctx, PurchaseRequest{
		OwnerID:       user.ID,
		BatchID:       batch.ID,
		LabelSize:     shipping.LabelSizeLetter,
		TermsAccepted: true,
	})
	require.NoError(t, err)

	page, err := svc.List(ctx, user.ID, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, result.Purchase.ID, page.Items[0].ID)

	found, err := svc.Get(ctx, user.ID, result.Purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, batch.ID, found.BatchID)

	// Another owner cannot see it
	other := env.seedUserNamed(t, "rival", "0")
	_, err = svc.Get(ctx, other.ID, result.Purchase.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

package shipping

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shipbatch/backend/internal/domain/account"
	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/persistence"
)

// testEnv wires the services against an in-memory database so the
// transactional paths run for real.
type testEnv struct {
	db        *gorm.DB
	uow       *persistence.GormUnitOfWork
	batches   shipping.BatchRepository
	shipments shipping.ShipmentRepository
	services  shipping.ServiceRepository
	purchases shipping.PurchaseRepository
	users     account.UserRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, persistence.AutoMigrate(db))
	return &testEnv{
		db:        db,
		uow:       persistence.NewGormUnitOfWork(db),
		batches:   persistence.NewGormBatchRepository(db),
		shipments: persistence.NewGormShipmentRepository(db),
		services:  persistence.NewGormServiceRepository(db),
		purchases: persistence.NewGormPurchaseRepository(db),
		users:     persistence.NewGormUserRepository(db),
	}
}

func (e *testEnv) seedUser(t *testing.T, balance string) *account.User {
	return e.seedUserNamed(t, "shipper", balance)
}

func (e *testEnv) seedUserNamed(t *testing.T, username, balance string) *account.User {
	t.Helper()
	user, err := account.NewUser(username, username+"@example.com")
	require.NoError(t, err)
	user.Balance = decimal.RequireFromString(balance)
	require.NoError(t, e.users.Save(context.Background(), user))
	return user
}

func (e *testEnv) seedService(t *testing.T, name string, serviceType shipping.ServiceType, basePrice, perOzRate string) *shipping.ShippingService {
	t.Helper()
	svc, err := shipping.NewShippingService(name, serviceType,
		decimal.RequireFromString(basePrice), decimal.RequireFromString(perOzRate))
	require.NoError(t, err)
	require.NoError(t, e.services.Save(context.Background(), svc))
	return svc
}

// seedBatch creates a reviewing batch with n valid shipments
func (e *testEnv) seedBatch(t *testing.T, ownerID uuid.UUID, n int) (*shipping.ShipmentBatch, []shipping.Shipment) {
	t.Helper()
	batch, err := shipping.NewShipmentBatch(ownerID, "shipments.csv")
	require.NoError(t, err)
	require.NoError(t, e.batches.Save(context.Background(), batch))

	shipments := make([]shipping.Shipment, 0, n)
	for i := 0; i < n; i++ {
		shipments = append(shipments, e.newValidShipment(t, batch.ID, 3+i))
	}
	require.NoError(t, e.shipments.CreateAll(context.Background(), shipments))

	batch.SetTotals(n, decimal.Zero)
	require.NoError(t, batch.MarkReviewing())
	require.NoError(t, e.batches.Save(context.Background(), batch))

	stored, err := e.shipments.FindByBatch(context.Background(), batch.ID)
	require.NoError(t, err)
	return batch, stored
}

func (e *testEnv) newValidShipment(t *testing.T, batchID uuid.UUID, rowNumber int) shipping.Shipment {
	t.Helper()
	s, err := shipping.NewShipment(batchID, rowNumber)
	require.NoError(t, err)
	s.From = shipping.Address{
		FirstName:    "Acme",
		AddressLine1: "100 Warehouse Rd",
		City:         "Portland",
		State:        "OR",
		ZipCode:      "97201",
	}
	s.To = shipping.Address{
		FirstName:    "John",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62704",
	}
	require.NoError(t, s.SetPackage(shipping.Package{
		Length:    decimal.NewFromInt(10),
		Width:     decimal.NewFromInt(6),
		Height:    decimal.NewFromInt(4),
		WeightLbs: 1,
		WeightOz:  8, // 24 oz total
	}))
	s.Revalidate()
	return *s
}

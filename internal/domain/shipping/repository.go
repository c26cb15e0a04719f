package shipping

import (
	"context"

	"github.com/google/uuid"

	"github.com/shipbatch/backend/internal/domain/account"
	"github.com/shipbatch/backend/internal/domain/shared"
)

// BatchRepository persists shipment batches
type BatchRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ShipmentBatch, error)
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*ShipmentBatch, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (shared.Paginated[ShipmentBatch], error)
	Save(ctx context.Context, batch *ShipmentBatch) error
	// SaveWithLock saves the batch with an optimistic version check
	SaveWithLock(ctx context.Context, batch *ShipmentBatch) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ShipmentRepository persists the rows of a batch
type ShipmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	// FindByIDs loads the given shipments; callers compare the result
	// count against the requested count to detect unknown IDs.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Shipment, error)
	FindByBatch(ctx context.Context, batchID uuid.UUID) ([]Shipment, error)
	CreateAll(ctx context.Context, shipments []Shipment) error
	Save(ctx context.Context, shipment *Shipment) error
	SaveAll(ctx context.Context, shipments []Shipment) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) error
	DeleteByBatch(ctx context.Context, batchID uuid.UUID) error
	// CountByBatch returns the number of shipments remaining in a batch
	CountByBatch(ctx context.Context, batchID uuid.UUID) (int64, error)
}

// ServiceRepository persists the shipping service catalog
type ServiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ShippingService, error)
	FindByName(ctx context.Context, name string) (*ShippingService, error)
	FindActive(ctx context.Context) ([]ShippingService, error)
	FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[ShippingService], error)
	Save(ctx context.Context, service *ShippingService) error
}

// PurchaseRepository persists finalized label purchases
type PurchaseRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*LabelPurchase, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (shared.Paginated[LabelPurchase], error)
	FindByBatch(ctx context.Context, batchID uuid.UUID) (*LabelPurchase, error)
	Save(ctx context.Context, purchase *LabelPurchase) error
}

// RepositorySet bundles the repositories that participate in a single
// database transaction.
type RepositorySet struct {
	Batches   BatchRepository
	Shipments ShipmentRepository
	Services  ServiceRepository
	Purchases PurchaseRepository
	Users     account.UserRepository
}

// UnitOfWork runs a function inside one transaction. Every repository
// in the set it hands to fn is bound to that transaction: either all
// writes commit together or none do.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, repos RepositorySet) error) error
}

package shipping

import (
	"context"

	"github.com/google/uuid"

	"github.com/shipbatch/backend/internal/domain/shipping"
)

// ShipmentService handles edits to individual shipments. Every edit
// re-runs row validation and recomputes the owning batch's totals in
// the same transaction.
type ShipmentService struct {
	batchRepo    shipping.BatchRepository
	shipmentRepo shipping.ShipmentRepository
	uow          shipping.UnitOfWork
}

// NewShipmentService creates a new ShipmentService
func NewShipmentService(batchRepo shipping.BatchRepository, shipmentRepo shipping.ShipmentRepository, uow shipping.UnitOfWork) *ShipmentService {
	return &ShipmentService{batchRepo: batchRepo, shipmentRepo: shipmentRepo, uow: uow}
}

// Get returns one shipment, checking ownership through its batch
func (s *ShipmentService) Get(ctx context.Context, ownerID, shipmentID uuid.UUID) (*shipping.Shipment, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.batchRepo.FindByIDForOwner(ctx, ownerID, shipment.BatchID); err != nil {
		return nil, err
	}
	return shipment, nil
}

// UpdateAddressRequest replaces one address zone of a shipment
type UpdateAddressRequest struct {
	OwnerID    uuid.UUID
	ShipmentID uuid.UUID
	Zone       shipping.AddressZone
	Address    shipping.Address
}

// UpdateAddress overwrites one address zone, drops the stale address
// review for that zone, and revalidates the row.
func (s *ShipmentService) UpdateAddress(ctx context.Context, req UpdateAddressRequest) (*shipping.Shipment, error) {
	return s.mutate(ctx, req.OwnerID, req.ShipmentID, func(shipment *shipping.Shipment) error {
		return shipment.SetAddress(req.Zone, req.Address)
	})
}

// UpdatePackageRequest replaces a shipment's package dimensions and weight
type UpdatePackageRequest struct {
	OwnerID    uuid.UUID
	ShipmentID uuid.UUID
	Package    shipping.Package
}

// UpdatePackage overwrites the package and revalidates the row. Any
// previously computed cost stays until the next pricing pass.
func (s *ShipmentService) UpdatePackage(ctx context.Context, req UpdatePackageRequest) (*shipping.Shipment, error) {
	return s.mutate(ctx, req.OwnerID, req.ShipmentID, func(shipment *shipping.Shipment) error {
		return shipment.SetPackage(req.Package)
	})
}

// UpdateReferenceRequest replaces the free-form reference fields
type UpdateReferenceRequest struct {
	OwnerID     uuid.UUID
	ShipmentID  uuid.UUID
	Phone1      string
	Phone2      string
	OrderNumber string
	ItemSKU     string
}

// UpdateReference overwrites the phones, order number and SKU
func (s *ShipmentService) UpdateReference(ctx context.Context, req UpdateReferenceRequest) (*shipping.Shipment, error) {
	return s.mutate(ctx, req.OwnerID, req.ShipmentID, func(shipment *shipping.Shipment) error {
		shipment.Phone1 = req.Phone1
		shipment.Phone2 = req.Phone2
		shipment.OrderNumber = req.OrderNumber
		shipment.ItemSKU = req.ItemSKU
		return nil
	})
}

// Delete removes one shipment and recomputes the batch totals
func (s *ShipmentService) Delete(ctx context.Context, ownerID, shipmentID uuid.UUID) error {
	return s.uow.Execute(ctx, func(ctx context.Context, repos shipping.RepositorySet) error {
		shipment, err := repos.Shipments.FindByID(ctx, shipmentID)
		if err != nil {
			return err
		}
		batch, err := repos.Batches.FindByIDForOwner(ctx, ownerID, shipment.BatchID)
		if err != nil {
			return err
		}
		if err := requireMutable(batch); err != nil {
			return err
		}
		if err := repos.Shipments.Delete(ctx, shipmentID); err != nil {
			return err
		}
		return recomputeTotals(ctx, repos, batch)
	})
}

// mutate runs one edit against a shipment inside a transaction: load,
// ownership check, apply, revalidate, save, recompute batch totals.
func (s *ShipmentService) mutate(ctx context.Context, ownerID, shipmentID uuid.UUID, apply func(*shipping.Shipment) error) (*shipping.Shipment, error) {
	var result *shipping.Shipment
	err := s.uow.Execute(ctx, func(ctx context.Context, repos shipping.RepositorySet) error {
		shipment, err := repos.Shipments.FindByID(ctx, shipmentID)
		if err != nil {
			return err
		}
		batch, err := repos.Batches.FindByIDForOwner(ctx, ownerID, shipment.BatchID)
		if err != nil {
			return err
		}
		if err := requireMutable(batch); err != nil {
			return err
		}
		if err := apply(shipment); err != nil {
			return err
		}
		shipment.Revalidate()
		if err := repos.Shipments.Save(ctx, shipment); err != nil {
			return err
		}
		if err := recomputeTotals(ctx, repos, batch); err != nil {
			return err
		}
		result = shipment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

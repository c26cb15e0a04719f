package shipping

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shipbatch/backend/internal/domain/shared"
	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/logger"
)

// BulkService applies one mutation to a selection of shipments in a
// single transaction. The operation is all-or-nothing: if any selected
// shipment cannot be resolved or belongs to someone else, nothing is
// changed.
type BulkService struct {
	uow shipping.UnitOfWork
}

// NewBulkService creates a new BulkService
func NewBulkService(uow shipping.UnitOfWork) *BulkService {
	return &BulkService{uow: uow}
}

// BulkAction names the mutation applied to every selected shipment
type BulkAction string

const (
	BulkActionSetAddress    BulkAction = "set_address"
	BulkActionSetPackage    BulkAction = "set_package"
	BulkActionAssignService BulkAction = "assign_service"
	BulkActionDelete        BulkAction = "delete"
)

// IsValid checks if the action is a known BulkAction
func (a BulkAction) IsValid() bool {
	switch a {
	case BulkActionSetAddress, BulkActionSetPackage, BulkActionAssignService, BulkActionDelete:
		return true
	}
	return false
}

// BulkRequest selects shipments and names exactly one mutation.
// Only the fields for the chosen action are read.
type BulkRequest struct {
	OwnerID     uuid.UUID
	ShipmentIDs []uuid.UUID
	Action      BulkAction

	Zone     shipping.AddressZone     // set_address
	Address  shipping.Address         // set_address
	Package  shipping.Package         // set_package
	Strategy shipping.ServiceStrategy // assign_service
}

// BulkResult summarizes one applied bulk mutation
type BulkResult struct {
	Affected       int `json:"affected"`
	BatchesTouched int `json:"batches_touched"`
}

// Execute applies the requested mutation to every selected shipment
func (s *BulkService) Execute(ctx context.Context, req BulkRequest) (*BulkResult, error) {
	if len(req.ShipmentIDs) == 0 {
		return nil, shared.NewDomainError("INVALID_SELECTION", "At least one shipment must be selected")
	}
	if !req.Action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Unknown bulk action")
	}

	result := &BulkResult{}
	err := s.uow.Execute(ctx, func(ctx context.Context, repos shipping.RepositorySet) error {
		shipments, err := repos.Shipments.FindByIDs(ctx, req.ShipmentIDs)
		if err != nil {
			return err
		}
		if len(shipments) != len(req.ShipmentIDs) {
			return shared.NewDomainErrorWithDetails("BULK_RESOLUTION_FAILED",
				"One or more selected shipments do not exist",
				map[string]any{"missing": missingIDs(req.ShipmentIDs, shipments)})
		}

		byBatch := make(map[uuid.UUID][]int)
		for i := range shipments {
			byBatch[shipments[i].BatchID] = append(byBatch[shipments[i].BatchID], i)
		}

		batches := make(map[uuid.UUID]*shipping.ShipmentBatch, len(byBatch))
		for batchID := range byBatch {
			batch, err := repos.Batches.FindByIDForOwner(ctx, req.OwnerID, batchID)
			if err != nil {
				return err
			}
			if err := requireMutable(batch); err != nil {
				return err
			}
			batches[batchID] = batch
		}

		var services []shipping.ShippingService
		if req.Action == BulkActionAssignService {
			if services, err = repos.Services.FindActive(ctx); err != nil {
				return err
			}
		}

		if req.Action == BulkActionDelete {
			if err := repos.Shipments.DeleteByIDs(ctx, req.ShipmentIDs); err != nil {
				return err
			}
		} else {
			for i := range shipments {
				if err := s.apply(req, &shipments[i], services); err != nil {
					return err
				}
				shipments[i].Revalidate()
			}
			if err := repos.Shipments.SaveAll(ctx, shipments); err != nil {
				return err
			}
		}

		for _, batch := range batches {
			if err := recomputeTotals(ctx, repos, batch); err != nil {
				return err
			}
		}

		result.Affected = len(req.ShipmentIDs)
		result.BatchesTouched = len(batches)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("bulk mutation applied",
		zap.String("action", string(req.Action)),
		zap.Int("affected", result.Affected),
		zap.Int("batches", result.BatchesTouched))
	return result, nil
}

func (s *BulkService) apply(req BulkRequest, shipment *shipping.Shipment, services []shipping.ShippingService) error {
	switch req.Action {
	case BulkActionSetAddress:
		return shipment.SetAddress(req.Zone, req.Address)
	case BulkActionSetPackage:
		return shipment.SetPackage(req.Package)
	case BulkActionAssignService:
		svc, err := req.Strategy.Resolve(services)
		if err != nil {
			return err
		}
		return shipment.AssignService(svc.Name, svc.Price(shipment.TotalWeightOz()))
	}
	return shared.NewDomainError("INVALID_ACTION", "Unknown bulk action")
}

func missingIDs(requested []uuid.UUID, found []shipping.Shipment) []string {
	present := make(map[uuid.UUID]bool, len(found))
	for i := range found {
		present[found[i].ID] = true
	}
	var missing []string
	for _, id := range requested {
		if !present[id] {
			missing = append(missing, id.String())
		}
	}
	return missing
}

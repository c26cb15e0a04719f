package shipping

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shipbatch/backend/internal/domain/shared"
	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/logger"
)

// BatchService handles batch lifecycle operations after ingestion
type BatchService struct {
	batchRepo    shipping.BatchRepository
	shipmentRepo shipping.ShipmentRepository
	uow          shipping.UnitOfWork
}

// NewBatchService creates a new BatchService
func NewBatchService(batchRepo shipping.BatchRepository, shipmentRepo shipping.ShipmentRepository, uow shipping.UnitOfWork) *BatchService {
	return &BatchService{batchRepo: batchRepo, shipmentRepo: shipmentRepo, uow: uow}
}

// BatchDetail is a batch together with its shipments
type BatchDetail struct {
	Batch     *shipping.ShipmentBatch `json:"batch"`
	Shipments []shipping.Shipment     `json:"shipments"`
}

// List returns the owner's batches, newest first
func (s *BatchService) List(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (shared.Paginated[shipping.ShipmentBatch], error) {
	return s.batchRepo.FindAllForOwner(ctx, ownerID, filter)
}

// Get returns one batch with all its shipments
func (s *BatchService) Get(ctx context.Context, ownerID, batchID uuid.UUID) (*BatchDetail, error) {
	batch, err := s.batchRepo.FindByIDForOwner(ctx, ownerID, batchID)
	if err != nil {
		return nil, err
	}
	shipments, err := s.shipmentRepo.FindByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	return &BatchDetail{Batch: batch, Shipments: shipments}, nil
}

// MarkReady advances a reviewing batch to ready
func (s *BatchService) MarkReady(ctx context.Context, ownerID, batchID uuid.UUID) (*shipping.ShipmentBatch, error) {
	var batch *shipping.ShipmentBatch
	err := s.uow.Execute(ctx, func(ctx context.Context, repos shipping.RepositorySet) error {
		var err error
		batch, err = repos.Batches.FindByIDForOwner(ctx, ownerID, batchID)
		if err != nil {
			return err
		}
		if err := batch.MarkReady(); err != nil {
			return err
		}
		batch.IncrementVersion()
		return repos.Batches.SaveWithLock(ctx, batch)
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// Cancel moves a batch to the terminal cancelled state. Purchased
// batches cannot be cancelled.
func (s *BatchService) Cancel(ctx context.Context, ownerID, batchID uuid.UUID) (*shipping.ShipmentBatch, error) {
	var batch *shipping.ShipmentBatch
	err := s.uow.Execute(ctx, func(ctx context.Context, repos shipping.RepositorySet) error {
		var err error
		batch, err = repos.Batches.FindByIDForOwner(ctx, ownerID, batchID)
		if err != nil {
			return err
		}
		if err := batch.Cancel(); err != nil {
			return err
		}
		batch.IncrementVersion()
		return repos.Batches.SaveWithLock(ctx, batch)
	})
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("batch cancelled", zap.String("batch_id", batchID.String()))
	return batch, nil
}

// Clear deletes every shipment in a batch and zeroes its totals.
// The batch itself survives so the user can re-upload into context.
func (s *BatchService) Clear(ctx context.Context, ownerID, batchID uuid.UUID) (*shipping.ShipmentBatch, error) {
	var batch *shipping.ShipmentBatch
	err := s.uow.Execute(ctx, func(ctx context.Context, repos shipping.RepositorySet) error {
		var err error
		batch, err = repos.Batches.FindByIDForOwner(ctx, ownerID, batchID)
		if err != nil {
			return err
		}
		if batch.IsPurchased() {
			return shared.NewDomainError("INVALID_STATE", "Purchased batches cannot be cleared")
		}
		if err := repos.Shipments.DeleteByBatch(ctx, batchID); err != nil {
			return err
		}
		batch.SetTotals(0, decimal.Zero)
		return repos.Batches.Save(ctx, batch)
	})
	if err != nil {
		return nil, err
	}
	logger.L(ctx).Info("batch cleared", zap.String("batch_id", batchID.String()))
	return batch, nil
}

// Delete removes a batch and all its shipments
func (s *BatchService) Delete(ctx context.Context, ownerID, batchID uuid.UUID) error {
	return s.uow.Execute(ctx, func(ctx context.Context, repos shipping.RepositorySet) error {
		batch, err := repos.Batches.FindByIDForOwner(ctx, ownerID, batchID)
		if err != nil {
			return err
		}
		if batch.IsPurchased() {
			return shared.NewDomainError("INVALID_STATE", "Purchased batches cannot be deleted")
		}
		if err := repos.Shipments.DeleteByBatch(ctx, batchID); err != nil {
			return err
		}
		return repos.Batches.Delete(ctx, batchID)
	})
}

// recomputeTotals reloads the batch's shipments, sums their costs, and
// writes the fresh rollup back to the batch. Totals are never adjusted
// incrementally.
func recomputeTotals(ctx context.Context, repos shipping.RepositorySet, batch *shipping.ShipmentBatch) error {
	shipments, err := repos.Shipments.FindByBatch(ctx, batch.ID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for i := range shipments {
		total = total.Add(shipments[i].ShippingCost)
	}
	batch.SetTotals(len(shipments), total)
	return repos.Batches.Save(ctx, batch)
}

// requireMutable rejects edits to batches that have reached a terminal state
func requireMutable(batch *shipping.ShipmentBatch) error {
	if batch.Status == shipping.BatchStatusPurchased || batch.Status == shipping.BatchStatusCancelled {
		return shared.NewDomainError("INVALID_STATE",
			"Batch in state "+batch.Status.String()+" cannot be modified")
	}
	return nil
}

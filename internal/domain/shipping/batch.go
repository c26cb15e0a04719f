package shipping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shipbatch/backend/internal/domain/shared"
)

// BatchStatus represents the lifecycle status of a shipment batch
type BatchStatus string

const (
	BatchStatusUploaded  BatchStatus = "uploaded"
	BatchStatusReviewing BatchStatus = "reviewing"
	BatchStatusReady     BatchStatus = "ready"
	BatchStatusPurchased BatchStatus = "purchased"
	BatchStatusCancelled BatchStatus = "cancelled"
)

// IsValid checks if the status is a valid BatchStatus
func (s BatchStatus) IsValid() bool {
	switch s {
	case BatchStatusUploaded, BatchStatusReviewing, BatchStatusReady, BatchStatusPurchased, BatchStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of BatchStatus
func (s BatchStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s BatchStatus) CanTransitionTo(target BatchStatus) bool {
	if target == BatchStatusCancelled {
		// Cancellation is allowed from any state except purchased, and is terminal
		return s != BatchStatusPurchased && s != BatchStatusCancelled
	}
	switch s {
	case BatchStatusUploaded:
		return target == BatchStatusReviewing
	case BatchStatusReviewing:
		return target == BatchStatusReady || target == BatchStatusPurchased
	case BatchStatusReady:
		return target == BatchStatusPurchased || target == BatchStatusReviewing
	case BatchStatusPurchased, BatchStatusCancelled:
		return false // Terminal states
	}
	return false
}

// ShipmentBatch represents one ingested shipment file and its rollup totals.
// TotalCost is always a full recompute over the batch's current shipments,
// never an incrementally maintained counter.
type ShipmentBatch struct {
	shared.OwnedAggregateRoot
	Filename       string
	Status         BatchStatus
	TotalShipments int
	TotalCost      decimal.Decimal
	PurchasedAt    *time.Time
}

// NewShipmentBatch creates a new batch in the uploaded state
func NewShipmentBatch(ownerID uuid.UUID, filename string) (*ShipmentBatch, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if filename == "" {
		return nil, shared.NewDomainError("INVALID_FILENAME", "Filename cannot be empty")
	}
	if len(filename) > 255 {
		return nil, shared.NewDomainError("INVALID_FILENAME", "Filename cannot exceed 255 characters")
	}

	return &ShipmentBatch{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Filename:           filename,
		Status:             BatchStatusUploaded,
		TotalCost:          decimal.Zero,
	}, nil
}

// SetTotals replaces the rollup totals with freshly recomputed values
func (b *ShipmentBatch) SetTotals(shipmentCount int, totalCost decimal.Decimal) {
	b.TotalShipments = shipmentCount
	b.TotalCost = totalCost
	b.Touch()
}

// transition moves the batch to the target status if the transition is legal
func (b *ShipmentBatch) transition(target BatchStatus) error {
	if !b.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Batch cannot transition from "+b.Status.String()+" to "+target.String())
	}
	b.Status = target
	b.Touch()
	return nil
}

// MarkReviewing advances the batch once ingestion has persisted all rows
func (b *ShipmentBatch) MarkReviewing() error {
	return b.transition(BatchStatusReviewing)
}

// MarkReady marks the batch as ready for purchase
func (b *ShipmentBatch) MarkReady() error {
	return b.transition(BatchStatusReady)
}

// MarkPurchased finalizes the batch and stamps the purchase time.
// Only the purchase transaction may call this.
func (b *ShipmentBatch) MarkPurchased(at time.Time) error {
	if err := b.transition(BatchStatusPurchased); err != nil {
		return err
	}
	b.PurchasedAt = &at
	return nil
}

// Cancel moves the batch to the terminal cancelled state
func (b *ShipmentBatch) Cancel() error {
	return b.transition(BatchStatusCancelled)
}

// IsPurchased reports whether the batch has been finalized
func (b *ShipmentBatch) IsPurchased() bool {
	return b.Status == BatchStatusPurchased
}

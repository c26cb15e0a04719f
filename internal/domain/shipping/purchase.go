package shipping

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shipbatch/backend/internal/domain/shared"
)

// LabelSize is the physical label layout for a purchase
type LabelSize string

const (
	LabelSizeLetter  LabelSize = "letter"
	LabelSizeThermal LabelSize = "4x6"
)

// IsValid checks if the size is a valid LabelSize
func (s LabelSize) IsValid() bool {
	return s == LabelSizeLetter || s == LabelSizeThermal
}

// LabelPurchase records a finalized, paid batch. It is immutable once
// created: the total and label count are snapshots taken at purchase time.
type LabelPurchase struct {
	shared.OwnedAggregateRoot
	BatchID       uuid.UUID
	LabelSize     LabelSize
	TotalAmount   decimal.Decimal
	TotalLabels   int
	TermsAccepted bool
	ArtifactRef   string
}

// NewLabelPurchase creates a purchase snapshot for a batch
func NewLabelPurchase(ownerID, batchID uuid.UUID, size LabelSize, totalAmount decimal.Decimal, totalLabels int, termsAccepted bool) (*LabelPurchase, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}
	if !size.IsValid() {
		return nil, shared.NewDomainError("INVALID_LABEL_SIZE", "Label size must be 'letter' or '4x6'")
	}
	if totalAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Purchase amount cannot be negative")
	}
	if totalLabels < 1 {
		return nil, shared.NewDomainError("INVALID_LABEL_COUNT", "Purchase must cover at least one label")
	}
	if !termsAccepted {
		return nil, shared.NewDomainError("TERMS_NOT_ACCEPTED", "Terms must be accepted before purchase")
	}

	return &LabelPurchase{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		BatchID:            batchID,
		LabelSize:          size,
		TotalAmount:        totalAmount,
		TotalLabels:        totalLabels,
		TermsAccepted:      termsAccepted,
	}, nil
}

// SetArtifactRef records the opaque reference to the generated label
// artifact. The core never inspects the artifact itself.
func (p *LabelPurchase) SetArtifactRef(ref string) {
	p.ArtifactRef = ref
	p.Touch()
}

package account

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shipbatch/backend/internal/domain/shared"
)

// SavedPackage is a reusable package-dimension preset
type SavedPackage struct {
	shared.OwnedAggregateRoot
	Name      string
	Length    decimal.Decimal
	Width     decimal.Decimal
	Height    decimal.Decimal
	WeightLbs int
	WeightOz  int
	IsDefault bool
}

// NewSavedPackage creates a new package preset
func NewSavedPackage(ownerID uuid.UUID, name string, length, width, height decimal.Decimal, weightLbs, weightOz int) (*SavedPackage, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Preset name cannot be empty")
	}
	if length.LessThanOrEqual(decimal.Zero) || width.LessThanOrEqual(decimal.Zero) || height.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_DIMENSIONS", "Package dimensions must be positive")
	}
	if weightLbs < 0 || weightOz < 0 {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Package weight cannot be negative")
	}

	return &SavedPackage{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		Length:             length,
		Width:              width,
		Height:             height,
		WeightLbs:          weightLbs,
		WeightOz:           weightOz,
	}, nil
}

// TotalWeightOz normalizes the preset weight to ounces
func (p *SavedPackage) TotalWeightOz() int {
	return p.WeightLbs*16 + p.WeightOz
}

// SetDefault flags this preset as the owner's default
func (p *SavedPackage) SetDefault(isDefault bool) {
	p.IsDefault = isDefault
	p.Touch()
}

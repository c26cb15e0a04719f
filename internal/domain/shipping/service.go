package shipping

import (
	"github.com/shopspring/decimal"

	"github.com/shipbatch/backend/internal/domain/shared"
)

// ServiceType classifies a shipping service
type ServiceType string

const (
	ServiceTypePriority  ServiceType = "priority"
	ServiceTypeGround    ServiceType = "ground"
	ServiceTypeExpress   ServiceType = "express"
	ServiceTypeOvernight ServiceType = "overnight"
)

// IsValid checks if the type is a valid ServiceType
func (t ServiceType) IsValid() bool {
	switch t {
	case ServiceTypePriority, ServiceTypeGround, ServiceTypeExpress, ServiceTypeOvernight:
		return true
	}
	return false
}

// String returns the string representation of ServiceType
func (t ServiceType) String() string {
	return string(t)
}

// ShippingService represents a configurable shipping service option
type ShippingService struct {
	shared.BaseAggregateRoot
	Name            string
	ServiceType     ServiceType
	Description     string
	BasePrice       decimal.Decimal
	PerOzRate       decimal.Decimal
	IsActive        bool
	DeliveryDaysMin int
	DeliveryDaysMax int
}

// NewShippingService creates a new shipping service option
func NewShippingService(name string, serviceType ServiceType, basePrice, perOzRate decimal.Decimal) (*ShippingService, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SERVICE_NAME", "Service name cannot be empty")
	}
	if !serviceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SERVICE_TYPE", "Unknown service type")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	if perOzRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Per-ounce rate cannot be negative")
	}

	return &ShippingService{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		ServiceType:       serviceType,
		BasePrice:         basePrice,
		PerOzRate:         perOzRate,
		IsActive:          true,
		DeliveryDaysMin:   1,
		DeliveryDaysMax:   5,
	}, nil
}

// Price computes the shipping cost for a total weight in ounces:
// base price plus the per-ounce rate times the weight. The computation
// reads a snapshot of the service and never mutates it.
func (s *ShippingService) Price(totalWeightOz int) decimal.Decimal {
	return s.BasePrice.Add(s.PerOzRate.Mul(decimal.NewFromInt(int64(totalWeightOz))))
}

// Deactivate removes the service from selection without deleting it
func (s *ShippingService) Deactivate() {
	s.IsActive = false
	s.Touch()
}

// Activate makes the service selectable again
func (s *ShippingService) Activate() {
	s.IsActive = true
	s.Touch()
}

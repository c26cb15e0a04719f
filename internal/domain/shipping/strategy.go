package shipping

import (
	"sort"

	"github.com/shipbatch/backend/internal/domain/shared"
)

// ServiceStrategy names a rule for choosing a shipping service
// during bulk reassignment.
type ServiceStrategy string

const (
	StrategyCheapest ServiceStrategy = "cheapest"
	StrategyPriority ServiceStrategy = "priority"
	StrategyGround   ServiceStrategy = "ground"
)

// IsValid checks if the strategy is a known ServiceStrategy
func (s ServiceStrategy) IsValid() bool {
	switch s {
	case StrategyCheapest, StrategyPriority, StrategyGround:
		return true
	}
	return false
}

// String returns the string representation of ServiceStrategy
func (s ServiceStrategy) String() string {
	return string(s)
}

// Resolve picks a service from the given options. Candidates are the
// active services matching the strategy's type (all active services for
// cheapest), ordered by base price ascending; the first one wins.
func (s ServiceStrategy) Resolve(services []ShippingService) (*ShippingService, error) {
	var wantType ServiceType
	switch s {
	case StrategyCheapest:
		wantType = ""
	case StrategyPriority:
		wantType = ServiceTypePriority
	case StrategyGround:
		wantType = ServiceTypeGround
	default:
		return nil, shared.NewDomainError("INVALID_STRATEGY", "Unknown service selection strategy")
	}

	candidates := make([]ShippingService, 0, len(services))
	for _, svc := range services {
		if !svc.IsActive {
			continue
		}
		if wantType != "" && svc.ServiceType != wantType {
			continue
		}
		candidates = append(candidates, svc)
	}
	if len(candidates) == 0 {
		return nil, shared.NewDomainError("SERVICE_NOT_FOUND", "No shipping service available for strategy "+s.String())
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].BasePrice.LessThan(candidates[j].BasePrice)
	})

	return &candidates[0], nil
}

package shipping

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shipbatch/backend/internal/domain/shared"
)

// AddressZone identifies which side of a shipment an address belongs to
type AddressZone string

const (
	AddressZoneFrom AddressZone = "from"
	AddressZoneTo   AddressZone = "to"
)

// IsValid checks if the zone is a valid AddressZone
func (z AddressZone) IsValid() bool {
	return z == AddressZoneFrom || z == AddressZoneTo
}

// Address holds one side's address fields of a shipment
type Address struct {
	FirstName    string
	LastName     string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
}

// IsEmpty returns true if no address field is set
func (a Address) IsEmpty() bool {
	return a.FirstName == "" && a.LastName == "" && a.AddressLine1 == "" &&
		a.AddressLine2 == "" && a.City == "" && a.State == "" && a.ZipCode == ""
}

// AddressReview is the recorded outcome of validating one address
// against the provider chain. It is opaque to the validator; the
// pipeline stores it verbatim for later inspection.
type AddressReview struct {
	Valid      bool     `json:"valid"`
	Provider   string   `json:"provider"`
	Confidence string   `json:"confidence,omitempty"`
	Normalized *Address `json:"normalized,omitempty"`
	Error      string   `json:"error,omitempty"`
	Disclaimer string   `json:"disclaimer,omitempty"`
}

// Package holds the physical package fields of a shipment
type Package struct {
	Length    decimal.Decimal
	Width     decimal.Decimal
	Height    decimal.Decimal
	WeightLbs int
	WeightOz  int
}

// TotalWeightOz normalizes the package weight to ounces
func (p Package) TotalWeightOz() int {
	return p.WeightLbs*16 + p.WeightOz
}

// Shipment represents one row's worth of normalized shipping data.
// ValidationStatus, ValidationErrors and ValidationWarnings are always
// the cached output of Revalidate; they are never set directly.
type Shipment struct {
	shared.BaseEntity
	BatchID   uuid.UUID
	RowNumber int

	From Address
	To   Address
	Pkg  Package

	Phone1      string
	Phone2      string
	OrderNumber string
	ItemSKU     string

	ServiceName  string
	ShippingCost decimal.Decimal

	ValidationStatus   ValidationStatus
	ValidationErrors   []string
	ValidationWarnings []string

	FromAddressValidated bool
	ToAddressValidated   bool
	FromAddressReview    *AddressReview
	ToAddressReview      *AddressReview
}

// NewShipment creates a shipment attached to a batch. The shipment starts
// in the pending validation state; callers run Revalidate before persisting.
func NewShipment(batchID uuid.UUID, rowNumber int) (*Shipment, error) {
	if batchID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BATCH", "Batch ID cannot be empty")
	}
	if rowNumber < 1 {
		return nil, shared.NewDomainError("INVALID_ROW_NUMBER", "Row number must be positive")
	}
	return &Shipment{
		BaseEntity:       shared.NewBaseEntity(),
		BatchID:          batchID,
		RowNumber:        rowNumber,
		ShippingCost:     decimal.Zero,
		ValidationStatus: ValidationStatusPending,
	}, nil
}

// Revalidate recomputes the cached validation state from the current fields
func (s *Shipment) Revalidate() ValidationStatus {
	result := Validate(s)
	s.ValidationStatus = result.Status
	s.ValidationErrors = result.Errors
	s.ValidationWarnings = result.Warnings
	s.Touch()
	return s.ValidationStatus
}

// SetAddress overwrites one address zone. The address-validated flag for
// the zone is reset because the previous review no longer applies.
func (s *Shipment) SetAddress(zone AddressZone, addr Address) error {
	switch zone {
	case AddressZoneFrom:
		s.From = addr
		s.FromAddressValidated = false
		s.FromAddressReview = nil
	case AddressZoneTo:
		s.To = addr
		s.ToAddressValidated = false
		s.ToAddressReview = nil
	default:
		return shared.NewDomainError("INVALID_ADDRESS_ZONE", "Address zone must be 'from' or 'to'")
	}
	s.Touch()
	return nil
}

// SetPackage overwrites the package dimensions and weight
func (s *Shipment) SetPackage(pkg Package) error {
	if pkg.Length.IsNegative() || pkg.Width.IsNegative() || pkg.Height.IsNegative() {
		return shared.NewDomainError("INVALID_DIMENSIONS", "Package dimensions cannot be negative")
	}
	if pkg.WeightLbs < 0 || pkg.WeightOz < 0 {
		return shared.NewDomainError("INVALID_WEIGHT", "Package weight cannot be negative")
	}
	s.Pkg = pkg
	s.Touch()
	return nil
}

// AssignService records the chosen service and its computed cost
func (s *Shipment) AssignService(serviceName string, cost decimal.Decimal) error {
	if serviceName == "" {
		return shared.NewDomainError("INVALID_SERVICE", "Service name cannot be empty")
	}
	if cost.IsNegative() {
		return shared.NewDomainError("INVALID_COST", "Shipping cost cannot be negative")
	}
	s.ServiceName = serviceName
	s.ShippingCost = cost
	s.Touch()
	return nil
}

// RecordAddressReview stores the outcome of an address validation run
// for one zone. Only a valid outcome flips the validated flag.
func (s *Shipment) RecordAddressReview(zone AddressZone, review AddressReview) error {
	switch zone {
	case AddressZoneFrom:
		s.FromAddressReview = &review
		s.FromAddressValidated = review.Valid
	case AddressZoneTo:
		s.ToAddressReview = &review
		s.ToAddressValidated = review.Valid
	default:
		return shared.NewDomainError("INVALID_ADDRESS_ZONE", "Address zone must be 'from' or 'to'")
	}
	s.Touch()
	return nil
}

// TotalWeightOz normalizes the shipment weight to ounces
func (s *Shipment) TotalWeightOz() int {
	return s.Pkg.TotalWeightOz()
}

package account

import (
	"github.com/google/uuid"

	"github.com/shipbatch/backend/internal/domain/shared"
)

// SavedAddress is a reusable address preset for quick selection
type SavedAddress struct {
	shared.OwnedAggregateRoot
	Name         string
	FirstName    string
	LastName     string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	ZipCode      string
	Phone        string
	IsDefault    bool
}

// NewSavedAddress creates a new address preset
func NewSavedAddress(ownerID uuid.UUID, name, firstName, line1, city, state, zipCode string) (*SavedAddress, error) {
	if ownerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_OWNER", "Owner ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Preset name cannot be empty")
	}
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_FIRST_NAME", "First name cannot be empty")
	}
	if line1 == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address line 1 cannot be empty")
	}
	if city == "" {
		return nil, shared.NewDomainError("INVALID_CITY", "City cannot be empty")
	}
	if len(state) != 2 {
		return nil, shared.NewDomainError("INVALID_STATE", "State must be a two-letter code")
	}
	if zipCode == "" {
		return nil, shared.NewDomainError("INVALID_ZIP", "ZIP code cannot be empty")
	}

	return &SavedAddress{
		OwnedAggregateRoot: shared.NewOwnedAggregateRoot(ownerID),
		Name:               name,
		FirstName:          firstName,
		AddressLine1:       line1,
		City:               city,
		State:              state,
		ZipCode:            zipCode,
	}, nil
}

// SetDefault flags this preset as the owner's default. The service layer
// clears any previous default under a per-owner guard before calling this.
func (a *SavedAddress) SetDefault(isDefault bool) {
	a.IsDefault = isDefault
	a.Touch()
}

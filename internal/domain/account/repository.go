package account

import (
	"context"

	"github.com/google/uuid"

	"github.com/shipbatch/backend/internal/domain/shared"
)

// UserRepository persists users and their balances
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	Save(ctx context.Context, user *User) error
	// SaveWithLock saves the user with an optimistic version check so
	// concurrent balance movements conflict instead of silently racing.
	SaveWithLock(ctx context.Context, user *User) error
}

// SavedAddressRepository persists address presets
type SavedAddressRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*SavedAddress, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]SavedAddress, error)
	Save(ctx context.Context, addr *SavedAddress) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ClearDefaultForOwner unsets the default flag on every preset of the owner
	ClearDefaultForOwner(ctx context.Context, ownerID uuid.UUID) error
}

// SavedPackageRepository persists package presets
type SavedPackageRepository interface {
	FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*SavedPackage, error)
	FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]SavedPackage, error)
	Save(ctx context.Context, pkg *SavedPackage) error
	Delete(ctx context.Context, id uuid.UUID) error
	ClearDefaultForOwner(ctx context.Context, ownerID uuid.UUID) error
}

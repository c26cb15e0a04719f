package account

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shipbatch/backend/internal/domain/account"
	"github.com/shipbatch/backend/internal/domain/shared"
)

// ownerLocks serializes default-flag changes per owner so two requests
// cannot leave an owner with two defaults.
type ownerLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newOwnerLocks() *ownerLocks {
	return &ownerLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

func (l *ownerLocks) forOwner(ownerID uuid.UUID) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[ownerID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[ownerID] = m
	}
	return m
}

// PresetService manages saved address and package presets
type PresetService struct {
	addrRepo account.SavedAddressRepository
	pkgRepo  account.SavedPackageRepository
	locks    *ownerLocks
}

// NewPresetService creates a new PresetService
func NewPresetService(addrRepo account.SavedAddressRepository, pkgRepo account.SavedPackageRepository) *PresetService {
	return &PresetService{
		addrRepo: addrRepo,
		pkgRepo:  pkgRepo,
		locks:    newOwnerLocks(),
	}
}

// SaveAddressRequest creates or updates an address preset
type SaveAddressRequest struct {
	OwnerID      uuid.UUID
	ID           uuid.UUID // zero for create
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

// SaveAddress creates or updates an address preset. Setting the default
// flag clears the owner's previous default under a per-owner lock.
func (s *PresetService) SaveAddress(ctx context.Context, req SaveAddressRequest) (*account.SavedAddress, error) {
	var preset *account.SavedAddress
	if req.ID == uuid.Nil {
		var err error
		preset, err = account.NewSavedAddress(req.OwnerID, req.Name, req.FirstName, req.AddressLine1, req.City, req.State, req.ZipCode)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		preset, err = s.addrRepo.FindByIDForOwner(ctx, req.OwnerID, req.ID)
		if err != nil {
			return nil, err
		}
		if len(req.State) != 2 {
			return nil, shared.NewDomainError("INVALID_STATE", "State must be a two-letter code")
		}
		preset.Name = req.Name
		preset.FirstName = req.FirstName
		preset.AddressLine1 = req.AddressLine1
		preset.City = req.City
		preset.State = req.State
		preset.ZipCode = req.ZipCode
		preset.Touch()
	}
	preset.LastName = req.LastName
	preset.AddressLine2 = req.AddressLine2
	preset.Phone = req.Phone

	if req.IsDefault {
		lock := s.locks.forOwner(req.OwnerID)
		lock.Lock()
		defer lock.Unlock()
		if err := s.addrRepo.ClearDefaultForOwner(ctx, req.OwnerID); err != nil {
			return nil, err
		}
	}
	preset.SetDefault(req.IsDefault)

	if err := s.addrRepo.Save(ctx, preset); err != nil {
		return nil, err
	}
	return preset, nil
}

// ListAddresses returns the owner's address presets
func (s *PresetService) ListAddresses(ctx context.Context, ownerID uuid.UUID) ([]account.SavedAddress, error) {
	return s.addrRepo.FindAllForOwner(ctx, ownerID, shared.DefaultFilter())
}

// DeleteAddress removes one address preset
func (s *PresetService) DeleteAddress(ctx context.Context, ownerID, id uuid.UUID) error {
	preset, err := s.addrRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return err
	}
	return s.addrRepo.Delete(ctx, preset.ID)
}

// SavePackageRequest creates or updates a package preset
type SavePackageRequest struct {
	OwnerID   uuid.UUID
	ID        uuid.UUID // zero for create
	Name      string
	Length    decimal.Decimal
	Width     decimal.Decimal
	Height    decimal.Decimal
	WeightLbs int
	WeightOz  int
	IsDefault bool
}

// SavePackage creates or updates a package preset
func (s *PresetService) SavePackage(ctx context.Context, req SavePackageRequest) (*account.SavedPackage, error) {
	var preset *account.SavedPackage
	if req.ID == uuid.Nil {
		var err error
		preset, err = account.NewSavedPackage(req.OwnerID, req.Name, req.Length, req.Width, req.Height, req.WeightLbs, req.WeightOz)
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		preset, err = s.pkgRepo.FindByIDForOwner(ctx, req.OwnerID, req.ID)
		if err != nil {
			return nil, err
		}
		if req.Length.LessThanOrEqual(decimal.Zero) || req.Width.LessThanOrEqual(decimal.Zero) || req.Height.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_DIMENSIONS", "Package dimensions must be positive")
		}
		preset.Name = req.Name
		preset.Length = req.Length
		preset.Width = req.Width
		preset.Height = req.Height
		preset.WeightLbs = req.WeightLbs
		preset.WeightOz = req.WeightOz
		preset.Touch()
	}

	if req.IsDefault {
		lock := s.locks.forOwner(req.OwnerID)
		lock.Lock()
		defer lock.Unlock()
		if err := s.pkgRepo.ClearDefaultForOwner(ctx, req.OwnerID); err != nil {
			return nil, err
		}
	}
	preset.SetDefault(req.IsDefault)

	if err := s.pkgRepo.Save(ctx, preset); err != nil {
		return nil, err
	}
	return preset, nil
}

// ListPackages returns the owner's package presets
func (s *PresetService) ListPackages(ctx context.Context, ownerID uuid.UUID) ([]account.SavedPackage, error) {
	return s.pkgRepo.FindAllForOwner(ctx, ownerID, shared.DefaultFilter())
}

// DeletePackage removes one package preset
func (s *PresetService) DeletePackage(ctx context.Context, ownerID, id uuid.UUID) error {
	preset, err := s.pkgRepo.FindByIDForOwner(ctx, ownerID, id)
	if err != nil {
		return err
	}
	return s.pkgRepo.Delete(ctx, preset.ID)
}

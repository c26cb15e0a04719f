package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shipbatch/backend/internal/domain/account"
	"github.com/shipbatch/backend/internal/domain/shared"
	"github.com/shipbatch/backend/internal/infrastructure/persistence/models"
)

// GormSavedAddressRepository implements SavedAddressRepository using GORM
type GormSavedAddressRepository struct {
	db *gorm.DB
}

// NewGormSavedAddressRepository creates a new GormSavedAddressRepository
func NewGormSavedAddressRepository(db *gorm.DB) *GormSavedAddressRepository {
	return &GormSavedAddressRepository{db: db}
}

// FindByIDForOwner finds an address preset by ID belonging to the owner
func (r *GormSavedAddressRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*account.SavedAddress, error) {
	var model models.SavedAddressModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND id = ?", ownerID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForOwner lists address presets for an owner
func (r *GormSavedAddressRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]account.SavedAddress, error) {
	var addressModels []models.SavedAddressModel
	query := r.db.WithContext(ctx).
		Model(&models.SavedAddressModel{}).
		Where("owner_id = ?", ownerID).
		Order("is_default DESC, name ASC")

	if err := query.Find(&addressModels).Error; err != nil {
		return nil, err
	}

	addresses := make([]account.SavedAddress, len(addressModels))
	for i, model := range addressModels {
		addresses[i] = *model.ToDomain()
	}
	return addresses, nil
}

// Save creates or updates an address preset
func (r *GormSavedAddressRepository) Save(ctx context.Context, addr *account.SavedAddress) error {
	model := models.SavedAddressModelFromDomain(addr)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes an address preset
func (r *GormSavedAddressRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SavedAddressModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ClearDefaultForOwner unsets the default flag on all presets of the owner
func (r *GormSavedAddressRepository) ClearDefaultForOwner(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.SavedAddressModel{}).
		Where("owner_id = ? AND is_default = ?", ownerID, true).
		Update("is_default", false).Error
}

// Ensure GormSavedAddressRepository implements SavedAddressRepository
var _ account.SavedAddressRepository = (*GormSavedAddressRepository)(nil)

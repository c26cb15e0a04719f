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

// GormSavedPackageRepository implements SavedPackageRepository using GORM
type GormSavedPackageRepository struct {
	db *gorm.DB
}

// NewGormSavedPackageRepository creates a new GormSavedPackageRepository
func NewGormSavedPackageRepository(db *gorm.DB) *GormSavedPackageRepository {
	return &GormSavedPackageRepository{db: db}
}

// FindByIDForOwner finds a package preset by ID belonging to the owner
func (r *GormSavedPackageRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*account.SavedPackage, error) {
	var model models.SavedPackageModel
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

// FindAllForOwner lists package presets for an owner
func (r *GormSavedPackageRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) ([]account.SavedPackage, error) {
	var packageModels []models.SavedPackageModel
	query := r.db.WithContext(ctx).
		Model(&models.SavedPackageModel{}).
		Where("owner_id = ?", ownerID).
		Order("is_default DESC, name ASC")

	if err := query.Find(&packageModels).Error; err != nil {
		return nil, err
	}

	packages := make([]account.SavedPackage, len(packageModels))
	for i, model := range packageModels {
		packages[i] = *model.ToDomain()
	}
	return packages, nil
}

// Save creates or updates a package preset
func (r *GormSavedPackageRepository) Save(ctx context.Context, pkg *account.SavedPackage) error {
	model := models.SavedPackageModelFromDomain(pkg)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a package preset
func (r *GormSavedPackageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SavedPackageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ClearDefaultForOwner unsets the default flag on all presets of the owner
func (r *GormSavedPackageRepository) ClearDefaultForOwner(ctx context.Context, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.SavedPackageModel{}).
		Where("owner_id = ? AND is_default = ?", ownerID, true).
		Update("is_default", false).Error
}

// Ensure GormSavedPackageRepository implements SavedPackageRepository
var _ account.SavedPackageRepository = (*GormSavedPackageRepository)(nil)

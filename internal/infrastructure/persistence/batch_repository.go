package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shipbatch/backend/internal/domain/shared"
	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/persistence/models"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.ShipmentBatch, error) {
	var model models.BatchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForOwner finds a batch by ID belonging to the owner
func (r *GormBatchRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*shipping.ShipmentBatch, error) {
	var model models.BatchModel
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

// FindAllForOwner lists batches for an owner with pagination
func (r *GormBatchRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (shared.Paginated[shipping.ShipmentBatch], error) {
	base := r.db.WithContext(ctx).Model(&models.BatchModel{}).Where("owner_id = ?", ownerID)
	base = applyBatchFilters(base, filter)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return shared.Paginated[shipping.ShipmentBatch]{}, err
	}

	var batchModels []models.BatchModel
	if err := applyPagination(base.Session(&gorm.Session{}), filter).Find(&batchModels).Error; err != nil {
		return shared.Paginated[shipping.ShipmentBatch]{}, err
	}

	batches := make([]shipping.ShipmentBatch, len(batchModels))
	for i, model := range batchModels {
		batches[i] = *model.ToDomain()
	}
	return shared.NewPaginated(batches, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *shipping.ShipmentBatch) error {
	model := models.BatchModelFromDomain(batch)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves a batch with optimistic locking (version check).
// Returns an error if the version has changed under us.
func (r *GormBatchRepository) SaveWithLock(ctx context.Context, batch *shipping.ShipmentBatch) error {
	model := models.BatchModelFromDomain(batch)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", batch.ID, batch.Version-1).
		Select("*").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewDomainError("OPTIMISTIC_LOCK_ERROR", "The batch has been modified by another transaction")
	}
	return nil
}

// Delete deletes a batch
func (r *GormBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BatchModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func applyBatchFilters(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("filename LIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}
	return query
}

// applyPagination applies ordering and pagination shared by all repositories
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// Ensure GormBatchRepository implements BatchRepository
var _ shipping.BatchRepository = (*GormBatchRepository)(nil)

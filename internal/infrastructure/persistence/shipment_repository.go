package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shipbatch/backend/internal/domain/shared"
	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/persistence/models"
)

// shipmentInsertBatchSize bounds multi-row inserts so large uploads do
// not exceed the driver's parameter limit.
const shipmentInsertBatchSize = 200

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.Shipment, error) {
	var model models.ShipmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple shipments by their IDs
func (r *GormShipmentRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]shipping.Shipment, error) {
	if len(ids) == 0 {
		return []shipping.Shipment{}, nil
	}

	var shipmentModels []models.ShipmentModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&shipmentModels).Error; err != nil {
		return nil, err
	}

	shipments := make([]shipping.Shipment, len(shipmentModels))
	for i, model := range shipmentModels {
		shipments[i] = *model.ToDomain()
	}
	return shipments, nil
}

// FindByBatch finds all shipments of a batch ordered by row number
func (r *GormShipmentRepository) FindByBatch(ctx context.Context, batchID uuid.UUID) ([]shipping.Shipment, error) {
	var shipmentModels []models.ShipmentModel
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("row_number ASC").
		Find(&shipmentModels).Error; err != nil {
		return nil, err
	}

	shipments := make([]shipping.Shipment, len(shipmentModels))
	for i, model := range shipmentModels {
		shipments[i] = *model.ToDomain()
	}
	return shipments, nil
}

// CreateAll inserts shipments in chunks
func (r *GormShipmentRepository) CreateAll(ctx context.Context, shipments []shipping.Shipment) error {
	if len(shipments) == 0 {
		return nil
	}

	shipmentModels := make([]*models.ShipmentModel, len(shipments))
	for i := range shipments {
		shipmentModels[i] = models.ShipmentModelFromDomain(&shipments[i])
	}
	return r.db.WithContext(ctx).CreateInBatches(shipmentModels, shipmentInsertBatchSize).Error
}

// Save creates or updates a shipment
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *shipping.Shipment) error {
	model := models.ShipmentModelFromDomain(shipment)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveAll saves multiple shipments
func (r *GormShipmentRepository) SaveAll(ctx context.Context, shipments []shipping.Shipment) error {
	if len(shipments) == 0 {
		return nil
	}
	shipmentModels := make([]*models.ShipmentModel, len(shipments))
	for i := range shipments {
		shipmentModels[i] = models.ShipmentModelFromDomain(&shipments[i])
	}
	return r.db.WithContext(ctx).Save(shipmentModels).Error
}

// Delete deletes a shipment
func (r *GormShipmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ShipmentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByIDs deletes multiple shipments
func (r *GormShipmentRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&models.ShipmentModel{}, "id IN ?", ids).Error
}

// DeleteByBatch deletes all shipments of a batch
func (r *GormShipmentRepository) DeleteByBatch(ctx context.Context, batchID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ShipmentModel{}, "batch_id = ?", batchID).Error
}

// CountByBatch counts shipments remaining in a batch
func (r *GormShipmentRepository) CountByBatch(ctx context.Context, batchID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("batch_id = ?", batchID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormShipmentRepository implements ShipmentRepository
var _ shipping.ShipmentRepository = (*GormShipmentRepository)(nil)

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

// GormPurchaseRepository implements PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByIDForOwner finds a purchase by ID belonging to the owner
func (r *GormPurchaseRepository) FindByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (*shipping.LabelPurchase, error) {
	var model models.PurchaseModel
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

// FindAllForOwner lists purchases for an owner with pagination
func (r *GormPurchaseRepository) FindAllForOwner(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (shared.Paginated[shipping.LabelPurchase], error) {
	base := r.db.WithContext(ctx).Model(&models.PurchaseModel{}).Where("owner_id = ?", ownerID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return shared.Paginated[shipping.LabelPurchase]{}, err
	}

	var purchaseModels []models.PurchaseModel
	if err := applyPagination(base.Session(&gorm.Session{}), filter).Find(&purchaseModels).Error; err != nil {
		return shared.Paginated[shipping.LabelPurchase]{}, err
	}

	purchases := make([]shipping.LabelPurchase, len(purchaseModels))
	for i, model := range purchaseModels {
		purchases[i] = *model.ToDomain()
	}
	return shared.NewPaginated(purchases, total, filter.Page, filter.PageSize), nil
}

// FindByBatch finds the purchase recorded for a batch
func (r *GormPurchaseRepository) FindByBatch(ctx context.Context, batchID uuid.UUID) (*shipping.LabelPurchase, error) {
	var model models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Where("batch_id = ?", batchID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a purchase
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *shipping.LabelPurchase) error {
	model := models.PurchaseModelFromDomain(purchase)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormPurchaseRepository implements PurchaseRepository
var _ shipping.PurchaseRepository = (*GormPurchaseRepository)(nil)

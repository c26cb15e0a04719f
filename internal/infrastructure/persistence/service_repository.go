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

// GormServiceRepository implements ServiceRepository using GORM
type GormServiceRepository struct {
	db *gorm.DB
}

// NewGormServiceRepository creates a new GormServiceRepository
func NewGormServiceRepository(db *gorm.DB) *GormServiceRepository {
	return &GormServiceRepository{db: db}
}

// FindByID finds a service by its ID
func (r *GormServiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*shipping.ShippingService, error) {
	var model models.ServiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByName finds a service by its unique name
func (r *GormServiceRepository) FindByName(ctx context.Context, name string) (*shipping.ShippingService, error) {
	var model models.ServiceModel
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActive finds all active services ordered by base price
func (r *GormServiceRepository) FindActive(ctx context.Context) ([]shipping.ShippingService, error) {
	var serviceModels []models.ServiceModel
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("base_price ASC, name ASC").
		Find(&serviceModels).Error; err != nil {
		return nil, err
	}

	services := make([]shipping.ShippingService, len(serviceModels))
	for i, model := range serviceModels {
		services[i] = *model.ToDomain()
	}
	return services, nil
}

// FindAll lists services with pagination
func (r *GormServiceRepository) FindAll(ctx context.Context, filter shared.Filter) (shared.Paginated[shipping.ShippingService], error) {
	base := r.db.WithContext(ctx).Model(&models.ServiceModel{})
	if filter.Search != "" {
		base = base.Where("name LIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "service_type":
			base = base.Where("service_type = ?", value)
		case "is_active":
			base = base.Where("is_active = ?", value)
		}
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return shared.Paginated[shipping.ShippingService]{}, err
	}

	var serviceModels []models.ServiceModel
	if err := applyPagination(base.Session(&gorm.Session{}), filter).Find(&serviceModels).Error; err != nil {
		return shared.Paginated[shipping.ShippingService]{}, err
	}

	services := make([]shipping.ShippingService, len(serviceModels))
	for i, model := range serviceModels {
		services[i] = *model.ToDomain()
	}
	return shared.NewPaginated(services, total, filter.Page, filter.PageSize), nil
}

// Save creates or updates a service
func (r *GormServiceRepository) Save(ctx context.Context, service *shipping.ShippingService) error {
	model := models.ServiceModelFromDomain(service)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormServiceRepository implements ServiceRepository
var _ shipping.ServiceRepository = (*GormServiceRepository)(nil)

package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/shipbatch/backend/internal/domain/shipping"
)

// GormUnitOfWork implements shipping.UnitOfWork on top of a GORM
// transaction. The repositories handed to fn are bound to the
// transaction, so every write inside fn commits or rolls back together.
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// Execute runs fn inside one database transaction
func (u *GormUnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, repos shipping.RepositorySet) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := shipping.RepositorySet{
			Batches:   NewGormBatchRepository(tx),
			Shipments: NewGormShipmentRepository(tx),
			Services:  NewGormServiceRepository(tx),
			Purchases: NewGormPurchaseRepository(tx),
			Users:     NewGormUserRepository(tx),
		}
		return fn(ctx, repos)
	})
}

// Ensure GormUnitOfWork implements UnitOfWork
var _ shipping.UnitOfWork = (*GormUnitOfWork)(nil)

package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipbatch/backend/internal/domain/shared"
	"github.com/shipbatch/backend/internal/domain/shipping"
)

func TestGormUnitOfWork_CommitsAllWrites(t *testing.T) {
	db := setupTestDB(t)
	uow := NewGormUnitOfWork(db)
	ctx := context.Background()

	batch := newTestBatch(t, uuid.New())
	shipment := newTestShipment(t, batch.ID, 3)

	err := uow.Execute(ctx, func(ctx context.Context, repos shipping.RepositorySet) error {
		if err := repos.Batches.Save(ctx, batch); err != nil {
			return err
		}
		return repos.Shipments.CreateAll(ctx, []shipping.Shipment{shipment})
	})
	require.NoError(t, err)

	_, err = NewGormBatchRepository(db).FindByID(ctx, batch.ID)
	assert.NoError(t, err)

	count, err := NewGormShipmentRepository(db).CountByBatch(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormUnitOfWork_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	uow := NewGormUnitOfWork(db)
	ctx := context.Background()

	batch := newTestBatch(t, uuid.New())
	boom := errors.New("boom")

	err := uow.Execute(ctx, func(ctx context.Context, repos shipping.RepositorySet) error {
		if err := repos.Batches.Save(ctx, batch); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = NewGormBatchRepository(db).FindByID(ctx, batch.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

package shipping

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShippingService(t *testing.T) {
	t.Run("creates active service", func(t *testing.T) {
		svc, err := NewShippingService("Ground Saver", ServiceTypeGround, decimal.NewFromFloat(4.00), decimal.NewFromFloat(0.10))
		require.NoError(t, err)
		require.NotNil(t, svc)

		assert.Equal(t, "Ground Saver", svc.Name)
		assert.Equal(t, ServiceTypeGround, svc.ServiceType)
		assert.True(t, svc.IsActive)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		svc, err := NewShippingService("", ServiceTypeGround, decimal.Zero, decimal.Zero)
		assert.Nil(t, svc)
		assert.Error(t, err)
	})

	t.Run("fails with unknown type", func(t *testing.T) {
		svc, err := NewShippingService("Ground Saver", ServiceType("drone"), decimal.Zero, decimal.Zero)
		assert.Nil(t, svc)
		assert.Error(t, err)
	})

	t.Run("fails with negative prices", func(t *testing.T) {
		_, err := NewShippingService("Ground Saver", ServiceTypeGround, decimal.NewFromInt(-1), decimal.Zero)
		assert.Error(t, err)

		_, err = NewShippingService("Ground Saver", ServiceTypeGround, decimal.Zero, decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestShippingService_Price(t *testing.T) {
	svc, err := NewShippingService("Ground Saver", ServiceTypeGround, decimal.NewFromFloat(4.00), decimal.NewFromFloat(0.10))
	require.NoError(t, err)

	t.Run("base plus per-ounce rate", func(t *testing.T) {
		price := svc.Price(24)
		assert.True(t, price.Equal(decimal.NewFromFloat(6.40)), "got %s", price)
	})

	t.Run("zero weight costs the base price", func(t *testing.T) {
		assert.True(t, svc.Price(0).Equal(decimal.NewFromFloat(4.00)))
	})
}

func TestShippingService_ActivateDeactivate(t *testing.T) {
	svc, err := NewShippingService("Ground Saver", ServiceTypeGround, decimal.NewFromFloat(4.00), decimal.Zero)
	require.NoError(t, err)

	svc.Deactivate()
	assert.False(t, svc.IsActive)

	svc.Activate()
	assert.True(t, svc.IsActive)
}

func TestServiceType_IsValid(t *testing.T) {
	for _, st := range []ServiceType{ServiceTypePriority, ServiceTypeGround, ServiceTypeExpress, ServiceTypeOvernight} {
		assert.True(t, st.IsValid())
	}
	assert.False(t, ServiceType("drone").IsValid())
}

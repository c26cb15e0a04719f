package shipping

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestAddress() Address {
	return Address{
		FirstName:    "John",
		LastName:     "Doe",
		AddressLine1: "1 Main St",
		City:         "Springfield",
		State:        "IL",
		ZipCode:      "62704",
	}
}

func TestNewShipment(t *testing.T) {
	batchID := uuid.New()

	t.Run("creates shipment in pending state", func(t *testing.T) {
		shipment, err := NewShipment(batchID, 3)
		require.NoError(t, err)
		require.NotNil(t, shipment)

		assert.NotEqual(t, uuid.Nil, shipment.ID)
		assert.Equal(t, batchID, shipment.BatchID)
		assert.Equal(t, 3, shipment.RowNumber)
		assert.Equal(t, ValidationStatusPending, shipment.ValidationStatus)
		assert.True(t, shipment.ShippingCost.IsZero())
		assert.False(t, shipment.FromAddressValidated)
		assert.False(t, shipment.ToAddressValidated)
	})

	t.Run("fails with nil batch ID", func(t *testing.T) {
		shipment, err := NewShipment(uuid.Nil, 3)
		assert.Nil(t, shipment)
		assert.Error(t, err)
	})

	t.Run("fails with non-positive row number", func(t *testing.T) {
		shipment, err := NewShipment(batchID, 0)
		assert.Nil(t, shipment)
		assert.Error(t, err)
	})
}

func TestShipment_Revalidate(t *testing.T) {
	newShipment := func(t *testing.T) *Shipment {
		t.Helper()
		s, err := NewShipment(uuid.New(), 3)
		require.NoError(t, err)
		return s
	}

	t.Run("complete shipment is valid", func(t *testing.T) {
		s := newShipment(t)
		s.To = validTestAddress()
		s.From = Address{FirstName: "Acme", AddressLine1: "100 Warehouse Rd", City: "Portland", State: "OR", ZipCode: "97201"}
		s.Pkg = Package{
			Length:    decimal.NewFromInt(10),
			Width:     decimal.NewFromInt(6),
			Height:    decimal.NewFromInt(4),
			WeightLbs: 1,
			WeightOz:  8,
		}

		status := s.Revalidate()
		assert.Equal(t, ValidationStatusValid, status)
		assert.Empty(t, s.ValidationErrors)
		assert.Empty(t, s.ValidationWarnings)
	})

	t.Run("missing recipient fields are errors", func(t *testing.T) {
		s := newShipment(t)
		s.To = Address{LastName: "Doe"}

		status := s.Revalidate()
		assert.Equal(t, ValidationStatusInvalid, status)
		assert.Contains(t, s.ValidationErrors, "Recipient first name is required")
		assert.Contains(t, s.ValidationErrors, "Recipient address is required")
		assert.Contains(t, s.ValidationErrors, "Recipient city is required")
		assert.Contains(t, s.ValidationErrors, "Recipient state is required")
		assert.Contains(t, s.ValidationErrors, "Recipient ZIP code is required")
	})

	t.Run("missing sender and package are warnings", func(t *testing.T) {
		s := newShipment(t)
		s.To = validTestAddress()

		status := s.Revalidate()
		assert.Equal(t, ValidationStatusWarning, status)
		assert.Empty(t, s.ValidationErrors)
		assert.Contains(t, s.ValidationWarnings, "Sender address is missing")
		assert.Contains(t, s.ValidationWarnings, "Package dimensions are missing")
		assert.Contains(t, s.ValidationWarnings, "Package weight is zero or missing")
	})

	t.Run("errors win over warnings", func(t *testing.T) {
		s := newShipment(t)
		status := s.Revalidate()
		assert.Equal(t, ValidationStatusInvalid, status)
		assert.NotEmpty(t, s.ValidationErrors)
		assert.NotEmpty(t, s.ValidationWarnings)
	})

	t.Run("is repeatable on unchanged fields", func(t *testing.T) {
		s := newShipment(t)
		s.To = validTestAddress()

		first := s.Revalidate()
		second := s.Revalidate()
		assert.Equal(t, first, second)
		assert.Equal(t, s.ValidationErrors, Validate(s).Errors)
	})
}

func TestShipment_SetAddress(t *testing.T) {
	t.Run("overwrites zone and drops the stale review", func(t *testing.T) {
		s, err := NewShipment(uuid.New(), 3)
		require.NoError(t, err)
		require.NoError(t, s.RecordAddressReview(AddressZoneTo, AddressReview{Valid: true, Provider: "smarty"}))
		require.True(t, s.ToAddressValidated)

		require.NoError(t, s.SetAddress(AddressZoneTo, validTestAddress()))
		assert.Equal(t, "John", s.To.FirstName)
		assert.False(t, s.ToAddressValidated)
		assert.Nil(t, s.ToAddressReview)
	})

	t.Run("leaves the other zone untouched", func(t *testing.T) {
		s, err := NewShipment(uuid.New(), 3)
		require.NoError(t, err)
		require.NoError(t, s.RecordAddressReview(AddressZoneFrom, AddressReview{Valid: true, Provider: "smarty"}))

		require.NoError(t, s.SetAddress(AddressZoneTo, validTestAddress()))
		assert.True(t, s.FromAddressValidated)
		assert.NotNil(t, s.FromAddressReview)
	})

	t.Run("rejects unknown zone", func(t *testing.T) {
		s, err := NewShipment(uuid.New(), 3)
		require.NoError(t, err)
		assert.Error(t, s.SetAddress(AddressZone("sideways"), validTestAddress()))
	})
}

func TestShipment_SetPackage(t *testing.T) {
	s, err := NewShipment(uuid.New(), 3)
	require.NoError(t, err)

	t.Run("accepts valid package", func(t *testing.T) {
		err := s.SetPackage(Package{
			Length:    decimal.NewFromInt(10),
			Width:     decimal.NewFromInt(6),
			Height:    decimal.NewFromInt(4),
			WeightLbs: 1,
			WeightOz:  8,
		})
		require.NoError(t, err)
		assert.Equal(t, 24, s.TotalWeightOz())
	})

	t.Run("rejects negative dimensions", func(t *testing.T) {
		err := s.SetPackage(Package{Length: decimal.NewFromInt(-1)})
		assert.Error(t, err)
	})

	t.Run("rejects negative weight", func(t *testing.T) {
		err := s.SetPackage(Package{WeightOz: -1})
		assert.Error(t, err)
	})
}

func TestShipment_AssignService(t *testing.T) {
	s, err := NewShipment(uuid.New(), 3)
	require.NoError(t, err)

	t.Run("records service and cost", func(t *testing.T) {
		err := s.AssignService("Ground Saver", decimal.NewFromFloat(6.40))
		require.NoError(t, err)
		assert.Equal(t, "Ground Saver", s.ServiceName)
		assert.True(t, s.ShippingCost.Equal(decimal.NewFromFloat(6.40)))
	})

	t.Run("rejects empty service name", func(t *testing.T) {
		assert.Error(t, s.AssignService("", decimal.NewFromInt(1)))
	})

	t.Run("rejects negative cost", func(t *testing.T) {
		assert.Error(t, s.AssignService("Ground Saver", decimal.NewFromInt(-1)))
	})
}

func TestShipment_RecordAddressReview(t *testing.T) {
	t.Run("valid review flips the validated flag", func(t *testing.T) {
		s, err := NewShipment(uuid.New(), 3)
		require.NoError(t, err)

		err = s.RecordAddressReview(AddressZoneTo, AddressReview{Valid: true, Provider: "smarty", Confidence: "high"})
		require.NoError(t, err)
		assert.True(t, s.ToAddressValidated)
		require.NotNil(t, s.ToAddressReview)
		assert.Equal(t, "smarty", s.ToAddressReview.Provider)
	})

	t.Run("rejected review keeps the flag false", func(t *testing.T) {
		s, err := NewShipment(uuid.New(), 3)
		require.NoError(t, err)

		err = s.RecordAddressReview(AddressZoneTo, AddressReview{Valid: false, Provider: "usps", Error: "address not found"})
		require.NoError(t, err)
		assert.False(t, s.ToAddressValidated)
		require.NotNil(t, s.ToAddressReview)
		assert.Equal(t, "address not found", s.ToAddressReview.Error)
	})

	t.Run("rejects unknown zone", func(t *testing.T) {
		s, err := NewShipment(uuid.New(), 3)
		require.NoError(t, err)
		assert.Error(t, s.RecordAddressReview(AddressZone("sideways"), AddressReview{Valid: true}))
	})
}

func TestAddressZone_IsValid(t *testing.T) {
	assert.True(t, AddressZoneFrom.IsValid())
	assert.True(t, AddressZoneTo.IsValid())
	assert.False(t, AddressZone("sideways").IsValid())
}

func TestAddress_IsEmpty(t *testing.T) {
	assert.True(t, Address{}.IsEmpty())
	assert.False(t, Address{ZipCode: "62704"}.IsEmpty())
}

func TestPackage_TotalWeightOz(t *testing.T) {
	assert.Equal(t, 0, Package{}.TotalWeightOz())
	assert.Equal(t, 24, Package{WeightLbs: 1, WeightOz: 8}.TotalWeightOz())
	assert.Equal(t, 32, Package{WeightLbs: 2}.TotalWeightOz())
}

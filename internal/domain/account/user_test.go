package account

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipbatch/backend/internal/domain/shared"
)

func TestNewUser(t *testing.T) {
	t.Run("creates user with zero balance", func(t *testing.T) {
		user, err := NewUser("shipper", "shipper@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.Equal(t, "shipper", user.Username)
		assert.Equal(t, "shipper@example.com", user.Email)
		assert.True(t, user.Balance.IsZero())
	})

	t.Run("fails with empty username", func(t *testing.T) {
		user, err := NewUser("", "shipper@example.com")
		assert.Nil(t, user)
		assert.Error(t, err)
	})

	t.Run("fails with overlong username", func(t *testing.T) {
		user, err := NewUser(strings.Repeat("a", 151), "shipper@example.com")
		assert.Nil(t, user)
		assert.Error(t, err)
	})
}

func TestUser_Balance(t *testing.T) {
	newFundedUser := func(t *testing.T, amount float64) *User {
		t.Helper()
		user, err := NewUser("shipper", "shipper@example.com")
		require.NoError(t, err)
		require.NoError(t, user.AddBalance(decimal.NewFromFloat(amount)))
		return user
	}

	t.Run("add then deduct", func(t *testing.T) {
		user := newFundedUser(t, 100.00)
		require.NoError(t, user.DeductBalance(decimal.NewFromFloat(22.50)))
		assert.True(t, user.Balance.Equal(decimal.NewFromFloat(77.50)), "got %s", user.Balance)
	})

	t.Run("deduct fails when balance is short", func(t *testing.T) {
		user := newFundedUser(t, 10.00)
		err := user.DeductBalance(decimal.NewFromFloat(22.50))
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrInsufficientBalance)
		assert.True(t, user.Balance.Equal(decimal.NewFromFloat(10.00)))
	})

	t.Run("deduct can drain the balance to zero", func(t *testing.T) {
		user := newFundedUser(t, 10.00)
		require.NoError(t, user.DeductBalance(decimal.NewFromFloat(10.00)))
		assert.True(t, user.Balance.IsZero())
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		user := newFundedUser(t, 10.00)
		assert.Error(t, user.DeductBalance(decimal.Zero))
		assert.Error(t, user.DeductBalance(decimal.NewFromInt(-1)))
		assert.Error(t, user.AddBalance(decimal.Zero))
		assert.Error(t, user.AddBalance(decimal.NewFromInt(-1)))
	})

	t.Run("has sufficient balance boundary", func(t *testing.T) {
		user := newFundedUser(t, 10.00)
		assert.True(t, user.HasSufficientBalance(decimal.NewFromFloat(10.00)))
		assert.False(t, user.HasSufficientBalance(decimal.NewFromFloat(10.01)))
	})
}

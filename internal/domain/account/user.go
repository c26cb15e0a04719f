package account

import (
	"github.com/shopspring/decimal"

	"github.com/shipbatch/backend/internal/domain/shared"
)

// User represents an account holder with a prepaid balance.
// The balance is the ledger the purchase transaction debits; it is
// only ever changed through DeductBalance and AddBalance so every
// movement can be guarded by optimistic locking at the store.
type User struct {
	shared.BaseAggregateRoot
	Username string
	Email    string
	Balance  decimal.Decimal
}

// NewUser creates a new user with a zero balance
func NewUser(username, email string) (*User, error) {
	if username == "" {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) > 150 {
		return nil, shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 150 characters")
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             email,
		Balance:           decimal.Zero,
	}, nil
}

// DeductBalance removes funds from the account balance
func (u *User) DeductBalance(amount decimal.Decimal) error {
	if amount.IsNegative() || amount.IsZero() {
		return shared.NewDomainError("INVALID_AMOUNT", "Deduction amount must be positive")
	}
	if u.Balance.LessThan(amount) {
		return shared.ErrInsufficientBalance
	}
	u.Balance = u.Balance.Sub(amount)
	u.Touch()
	return nil
}

// AddBalance credits funds to the account balance
func (u *User) AddBalance(amount decimal.Decimal) error {
	if amount.IsNegative() || amount.IsZero() {
		return shared.NewDomainError("INVALID_AMOUNT", "Credit amount must be positive")
	}
	u.Balance = u.Balance.Add(amount)
	u.Touch()
	return nil
}

// HasSufficientBalance reports whether the balance covers the amount
func (u *User) HasSufficientBalance(amount decimal.Decimal) bool {
	return u.Balance.GreaterThanOrEqual(amount)
}

package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shipbatch/backend/internal/domain/account"
)

// BalanceService exposes account balance reads
type BalanceService struct {
	userRepo account.UserRepository
}

// NewBalanceService creates a new BalanceService
func NewBalanceService(userRepo account.UserRepository) *BalanceService {
	return &BalanceService{userRepo: userRepo}
}

// Balance is the current prepaid balance of an account
type Balance struct {
	UserID  uuid.UUID       `json:"user_id"`
	Balance decimal.Decimal `json:"balance"`
}

// GetBalance returns the user's current balance
func (s *BalanceService) GetBalance(ctx context.Context, userID uuid.UUID) (*Balance, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Balance{UserID: user.ID, Balance: user.Balance}, nil
}

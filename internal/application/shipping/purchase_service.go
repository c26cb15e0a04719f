package shipping

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shipbatch/backend/internal/domain/shared"
	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/logger"
)

// PurchaseService finalizes batches. The debit, the purchase record and
// the batch state change commit in one transaction; optimistic locks on
// both the user and the batch make concurrent purchases of the same
// batch lose cleanly.
type PurchaseService struct {
	purchaseRepo shipping.PurchaseRepository
	uow          shipping.UnitOfWork
}

// NewPurchaseService creates a new PurchaseService
func NewPurchaseService(purchaseRepo shipping.PurchaseRepository, uow shipping.UnitOfWork) *PurchaseService {
	return &PurchaseService{purchaseRepo: purchaseRepo, uow: uow}
}

// PurchaseRequest asks to finalize one batch
type PurchaseRequest struct {
	OwnerID       uuid.UUID
	BatchID       uuid.UUID
	LabelSize     shipping.LabelSize
	TermsAccepted bool
}

// PurchaseResult is the outcome of a successful purchase
type PurchaseResult struct {
	Purchase     *shipping.LabelPurchase `json:"purchase"`
	Batch        *shipping.ShipmentBatch `json:"batch"`
	BalanceAfter decimal.Decimal         `json:"balance_after"`
}

// Purchase finalizes a batch: verifies it has shipments, that terms were
// accepted and that the owner's balance covers a freshly recomputed
// total, then debits the balance, snapshots the purchase and marks the
// batch purchased. All of it commits or none of it does.
func (s *PurchaseService) Purchase(ctx context.Context, req PurchaseRequest) (*PurchaseResult, error) {
	if !req.LabelSize.IsValid() {
		return nil, shared.NewDomainError("INVALID_LABEL_SIZE", "Label size must be 'letter' or '4x6'")
	}

	result := &PurchaseResult{}
	err := s.uow.Execute(ctx, func(ctx context.Context, repos shipping.RepositorySet) error {
		batch, err := repos.Batches.FindByIDForOwner(ctx, req.OwnerID, req.BatchID)
		if err != nil {
			return err
		}
		if !batch.Status.CanTransitionTo(shipping.BatchStatusPurchased) {
			return shared.NewDomainError("INVALID_STATE",
				"Batch in state "+batch.Status.String()+" cannot be purchased")
		}

		shipments, err := repos.Shipments.FindByBatch(ctx, req.BatchID)
		if err != nil {
			return err
		}
		if len(shipments) == 0 {
			return shared.NewDomainError("EMPTY_BATCH", "Batch has no shipments to purchase")
		}
		if !req.TermsAccepted {
			return shared.NewDomainError("TERMS_NOT_ACCEPTED", "Terms must be accepted before purchase")
		}

		// The total is recomputed from the rows inside the transaction;
		// the stored rollup is never trusted for money movement.
		total := decimal.Zero
		for i := range shipments {
			total = total.Add(shipments[i].ShippingCost)
		}

		user, err := repos.Users.FindByID(ctx, req.OwnerID)
		if err != nil {
			return err
		}
		if !user.HasSufficientBalance(total) {
			return shared.NewDomainErrorWithDetails("INSUFFICIENT_BALANCE",
				fmt.Sprintf("Balance %s does not cover purchase total %s", user.Balance.StringFixed(2), total.StringFixed(2)),
				map[string]any{
					"required":  total.StringFixed(2),
					"available": user.Balance.StringFixed(2),
				})
		}
		if err := user.DeductBalance(total); err != nil {
			return err
		}
		user.IncrementVersion()
		if err := repos.Users.SaveWithLock(ctx, user); err != nil {
			return err
		}

		purchase, err := shipping.NewLabelPurchase(req.OwnerID, req.BatchID, req.LabelSize, total, len(shipments), req.TermsAccepted)
		if err != nil {
			return err
		}
		purchase.SetArtifactRef(fmt.Sprintf("labels/%s-%s.pdf", purchase.ID, req.LabelSize))
		if err := repos.Purchases.Save(ctx, purchase); err != nil {
			return err
		}

		batch.SetTotals(len(shipments), total)
		if err := batch.MarkPurchased(time.Now().UTC()); err != nil {
			return err
		}
		batch.IncrementVersion()
		if err := repos.Batches.SaveWithLock(ctx, batch); err != nil {
			return err
		}

		result.Purchase = purchase
		result.Batch = batch
		result.BalanceAfter = user.Balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("batch purchased",
		zap.String("batch_id", req.BatchID.String()),
		zap.String("purchase_id", result.Purchase.ID.String()),
		zap.String("total", result.Purchase.TotalAmount.String()),
		zap.Int("labels", result.Purchase.TotalLabels))
	return result, nil
}

// List returns the owner's purchases, newest first
func (s *PurchaseService) List(ctx context.Context, ownerID uuid.UUID, filter shared.Filter) (shared.Paginated[shipping.LabelPurchase], error) {
	return s.purchaseRepo.FindAllForOwner(ctx, ownerID, filter)
}

// Get returns one purchase for the owner
func (s *PurchaseService) Get(ctx context.Context, ownerID, purchaseID uuid.UUID) (*shipping.LabelPurchase, error) {
	return s.purchaseRepo.FindByIDForOwner(ctx, ownerID, purchaseID)
}

package shipping

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/shipbatch/backend/internal/domain/shared"
	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/logger"
)

// PricingService assigns services and computes shipping costs
type PricingService struct {
	serviceRepo shipping.ServiceRepository
	uow         shipping.UnitOfWork
}

// NewPricingService creates a new PricingService
func NewPricingService(serviceRepo shipping.ServiceRepository, uow shipping.UnitOfWork) *PricingService {
	return &PricingService{serviceRepo: serviceRepo, uow: uow}
}

// ListActiveServices returns the selectable service catalog, cheapest first
func (s *PricingService) ListActiveServices(ctx context.Context) ([]shipping.ShippingService, error) {
	return s.serviceRepo.FindActive(ctx)
}

// QuoteRequest asks for a price without touching any shipment
type QuoteRequest struct {
	ServiceName string
	WeightLbs   int
	WeightOz    int
}

// Quote is a computed price for one service and weight
type Quote struct {
	ServiceName   string          `json:"service_name"`
	TotalWeightOz int             `json:"total_weight_oz"`
	Price         decimal.Decimal `json:"price"`
}

// Quote prices a hypothetical package against one service
func (s *PricingService) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if req.WeightLbs < 0 || req.WeightOz < 0 {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Package weight cannot be negative")
	}
	svc, err := s.serviceRepo.FindByName(ctx, req.ServiceName)
	if err != nil {
		return nil, err
	}
	if !svc.IsActive {
		return nil, shared.NewDomainError("SERVICE_NOT_FOUND", "Service "+req.ServiceName+" is not available")
	}
	pkg := shipping.Package{WeightLbs: req.WeightLbs, WeightOz: req.WeightOz}
	oz := pkg.TotalWeightOz()
	return &Quote{
		ServiceName:   svc.Name,
		TotalWeightOz: oz,
		Price:         svc.Price(oz),
	}, nil
}

// CalculateCostsResult summarizes one pricing pass over a batch
type CalculateCostsResult struct {
	Batch            *shipping.ShipmentBatch `json:"batch"`
	PricedShipments  int                     `json:"priced_shipments"`
	SkippedShipments int                     `json:"skipped_shipments"`
}

// CalculateCosts assigns the cheapest active service to every shipment
// in the batch that passed row validation, prices it by weight, and
// recomputes the batch totals. Invalid and pending rows are skipped and
// keep whatever service they had.
func (s *PricingService) CalculateCosts(ctx context.Context, ownerID, batchID uuid.UUID) (*CalculateCostsResult, error) {
	result := &CalculateCostsResult{}
	err := s.uow.Execute(ctx, func(ctx context.Context, repos shipping.RepositorySet) error {
		batch, err := repos.Batches.FindByIDForOwner(ctx, ownerID, batchID)
		if err != nil {
			return err
		}
		if err := requireMutable(batch); err != nil {
			return err
		}

		services, err := repos.Services.FindActive(ctx)
		if err != nil {
			return err
		}
		cheapest, err := shipping.StrategyCheapest.Resolve(services)
		if err != nil {
			return err
		}

		shipments, err := repos.Shipments.FindByBatch(ctx, batchID)
		if err != nil {
			return err
		}

		changed := make([]shipping.Shipment, 0, len(shipments))
		for i := range shipments {
			sh := &shipments[i]
			switch sh.ValidationStatus {
			case shipping.ValidationStatusValid, shipping.ValidationStatusWarning:
				if err := sh.AssignService(cheapest.Name, cheapest.Price(sh.TotalWeightOz())); err != nil {
					return err
				}
				changed = append(changed, *sh)
				result.PricedShipments++
			default:
				result.SkippedShipments++
			}
		}
		if err := repos.Shipments.SaveAll(ctx, changed); err != nil {
			return err
		}

		if err := recomputeTotals(ctx, repos, batch); err != nil {
			return err
		}
		result.Batch = batch
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("batch costs calculated",
		zap.String("batch_id", batchID.String()),
		zap.Int("priced", result.PricedShipments),
		zap.Int("skipped", result.SkippedShipments))
	return result, nil
}

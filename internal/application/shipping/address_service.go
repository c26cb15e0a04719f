package shipping

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/addressval"
	"github.com/shipbatch/backend/internal/infrastructure/logger"
)

// AddressService runs the external address validation chain over
// shipments. Provider calls happen outside any database transaction;
// only the recorded reviews are written back.
type AddressService struct {
	batchRepo    shipping.BatchRepository
	shipmentRepo shipping.ShipmentRepository
	chain        *addressval.Chain
}

// NewAddressService creates a new AddressService
func NewAddressService(batchRepo shipping.BatchRepository, shipmentRepo shipping.ShipmentRepository, chain *addressval.Chain) *AddressService {
	return &AddressService{batchRepo: batchRepo, shipmentRepo: shipmentRepo, chain: chain}
}

// ValidateAddressesResult summarizes one validation pass
type ValidateAddressesResult struct {
	Validated int `json:"validated"`
	Confirmed int `json:"confirmed"`
	Rejected  int `json:"rejected"`
}

// ValidateBatchAddresses runs the provider chain over one address zone
// of every shipment in a batch and records the reviews.
func (s *AddressService) ValidateBatchAddresses(ctx context.Context, ownerID, batchID uuid.UUID, zone shipping.AddressZone) (*ValidateAddressesResult, error) {
	if _, err := s.batchRepo.FindByIDForOwner(ctx, ownerID, batchID); err != nil {
		return nil, err
	}
	shipments, err := s.shipmentRepo.FindByBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}

	addrs := make([]shipping.Address, len(shipments))
	for i := range shipments {
		addrs[i] = addressForZone(&shipments[i], zone)
	}

	reviews := s.chain.ValidateBatch(ctx, addrs)

	result := &ValidateAddressesResult{Validated: len(shipments)}
	for i := range shipments {
		if err := shipments[i].RecordAddressReview(zone, *reviews[i]); err != nil {
			return nil, err
		}
		if reviews[i].Valid {
			result.Confirmed++
		} else {
			result.Rejected++
		}
	}

	if err := s.shipmentRepo.SaveAll(ctx, shipments); err != nil {
		return nil, err
	}

	logger.L(ctx).Info("batch addresses validated",
		zap.String("batch_id", batchID.String()),
		zap.String("zone", string(zone)),
		zap.Int("confirmed", result.Confirmed),
		zap.Int("rejected", result.Rejected))
	return result, nil
}

// ValidateShipmentAddress runs the provider chain for one shipment zone
func (s *AddressService) ValidateShipmentAddress(ctx context.Context, ownerID, shipmentID uuid.UUID, zone shipping.AddressZone) (*shipping.Shipment, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, shipmentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.batchRepo.FindByIDForOwner(ctx, ownerID, shipment.BatchID); err != nil {
		return nil, err
	}

	review := s.chain.Validate(ctx, addressForZone(shipment, zone))
	if err := shipment.RecordAddressReview(zone, *review); err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	return shipment, nil
}

func addressForZone(shipment *shipping.Shipment, zone shipping.AddressZone) shipping.Address {
	if zone == shipping.AddressZoneFrom {
		return shipment.From
	}
	return shipment.To
}

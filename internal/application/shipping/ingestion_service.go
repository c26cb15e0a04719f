package shipping

import (
	"context"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shipbatch/backend/internal/domain/shared"
	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/ingest"
	"github.com/shipbatch/backend/internal/infrastructure/logger"
)

// IngestionService turns an uploaded CSV into a persisted batch with
// one shipment per parsed row.
type IngestionService struct {
	parser *ingest.Parser
	uow    shipping.UnitOfWork
}

// NewIngestionService creates a new IngestionService
func NewIngestionService(parser *ingest.Parser, uow shipping.UnitOfWork) *IngestionService {
	return &IngestionService{parser: parser, uow: uow}
}

// IngestResult is the outcome of one upload
type IngestResult struct {
	Batch         *shipping.ShipmentBatch `json:"batch"`
	ShipmentCount int                     `json:"shipment_count"`
	Warnings      []string                `json:"warnings,omitempty"`
}

// IngestBatch parses the upload, validates every row, and persists the
// batch with its shipments in one transaction. The batch lands in the
// reviewing state; skipped rows are reported as warnings, not failures.
func (s *IngestionService) IngestBatch(ctx context.Context, ownerID uuid.UUID, filename string, r io.Reader) (*IngestResult, error) {
	parsed, err := s.parser.Parse(r)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_UPLOAD", "Could not parse upload: "+err.Error())
	}
	if len(parsed.Rows) == 0 {
		return nil, shared.NewDomainErrorWithDetails("EMPTY_UPLOAD",
			"Upload contained no usable shipment rows",
			map[string]any{"warnings": parsed.Warnings})
	}

	batch, err := shipping.NewShipmentBatch(ownerID, filename)
	if err != nil {
		return nil, err
	}

	shipments := make([]shipping.Shipment, 0, len(parsed.Rows))
	for _, row := range parsed.Rows {
		shipment, err := shipping.NewShipment(batch.ID, row.RowNumber)
		if err != nil {
			return nil, err
		}
		shipment.From = row.From
		shipment.To = row.To
		shipment.Pkg = row.Pkg
		shipment.Phone1 = row.Phone1
		shipment.Phone2 = row.Phone2
		shipment.OrderNumber = row.OrderNumber
		shipment.ItemSKU = row.ItemSKU
		shipment.Revalidate()
		shipments = append(shipments, *shipment)
	}

	err = s.uow.Execute(ctx, func(ctx context.Context, repos shipping.RepositorySet) error {
		if err := repos.Batches.Save(ctx, batch); err != nil {
			return err
		}
		if err := repos.Shipments.CreateAll(ctx, shipments); err != nil {
			return err
		}
		batch.SetTotals(len(shipments), batch.TotalCost)
		if err := batch.MarkReviewing(); err != nil {
			return err
		}
		return repos.Batches.Save(ctx, batch)
	})
	if err != nil {
		return nil, err
	}

	logger.L(ctx).Info("batch ingested",
		zap.String("batch_id", batch.ID.String()),
		zap.Int("shipments", len(shipments)),
		zap.Int("skipped_rows", len(parsed.Warnings)))

	return &IngestResult{
		Batch:         batch,
		ShipmentCount: len(shipments),
		Warnings:      parsed.Warnings,
	}, nil
}

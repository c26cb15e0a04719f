package shipping

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shipbatch/backend/internal/domain/shared"
	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/infrastructure/ingest"
)

const uploadHeaders = "Sender,,,,,,,Recipient,,,,,,,Package,,,,,Extras,,,\n" +
	"From First,From Last,From Line1,From Line2,From City,From Zip,From State," +
	"To First,To Last,To Line1,To Line2,To City,To Zip,To State," +
	"Lbs,Oz,Length,Width,Height,Phone1,Phone2,Order,SKU\n"

func uploadRow(toFirst, toZip, toState string) string {
	cols := []string{
		"Acme", "", "100 Warehouse Rd", "", "Portland", "97201", "OR",
		toFirst, "Doe", "1 Main St", "", "Springfield", toZip, toState,
		"1", "8", "10", "6", "4", "555-0100", "", "ORD-1", "SKU-1",
	}
	return strings.Join(cols, ",") + "\n"
}

func TestIngestionService_IngestBatch(t *testing.T) {
	env := newTestEnv(t)
	svc := NewIngestionService(ingest.NewParser(0), env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "0")
	upload := uploadHeaders + uploadRow("John", "62704", "il") + uploadRow("Jane", "60601", "IL")

	result, err := svc.IngestBatch(ctx, user.ID, "shipments.csv", strings.NewReader(upload))
	require.NoError(t, err)

	assert.Equal(t, 2, result.ShipmentCount)
	assert.Empty(t, result.Warnings)
	assert.Equal(t, shipping.BatchStatusReviewing, result.Batch.Status)
	assert.Equal(t, 2, result.Batch.TotalShipments)

	stored, err := env.shipments.FindByBatch(ctx, result.Batch.ID)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	// Rows are numbered as the user sees them in a spreadsheet
	assert.Equal(t, 3, stored[0].RowNumber)
	assert.Equal(t, 4, stored[1].RowNumber)

	// State codes are normalized and validation ran at ingest time
	assert.Equal(t, "IL", stored[0].To.State)
	assert.Equal(t, shipping.ValidationStatusValid, stored[0].ValidationStatus)
	assert.Equal(t, 24, stored[0].TotalWeightOz())
	assert.Equal(t, "ORD-1", stored[0].OrderNumber)
}

func TestIngestionService_ShortRowsBecomeWarnings(t *testing.T) {
	env := newTestEnv(t)
	svc := NewIngestionService(ingest.NewParser(0), env.uow)
	ctx := context.Background()

	user := env.seedUser(t, "0")
	upload := uploadHeaders + uploadRow("John", "62704", "IL") + "only,three,columns\n"

	result, err := svc.IngestBatch(ctx, user.ID, "shipments.csv", strings.NewReader(upload))
	require.NoError(t, err)

	assert.Equal(t, 1, result.ShipmentCount)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "row 4")
}

func TestIngestionService_AllRowsSkippedFails(t *testing.T) {
	env := newTestEnv(t)
	svc := NewIngestionService(ingest.NewParser(0), env.uow)

	user := env.seedUser(t, "0")
	upload := uploadHeaders + "only,three,columns\n"

	_, err := svc.IngestBatch(context.Background(), user.ID, "shipments.csv", strings.NewReader(upload))
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EMPTY_UPLOAD", domainErr.Code)
}

func TestIngestionService_UnparseableUploadFails(t *testing.T) {
	env := newTestEnv(t)
	svc := NewIngestionService(ingest.NewParser(0), env.uow)

	user := env.seedUser(t, "0")
	_, err := svc.IngestBatch(context.Background(), user.ID, "empty.csv", strings.NewReader(""))
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_UPLOAD", domainErr.Code)
}

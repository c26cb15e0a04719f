package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shippingapp "github.com/shipbatch/backend/internal/application/shipping"
	"github.com/shipbatch/backend/internal/domain/shared"
	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/interfaces/http/dto"
)

// BatchHandler handles batch lifecycle API endpoints
type BatchHandler struct {
	BaseHandler
	ingestionService *shippingapp.IngestionService
	batchService     *shippingapp.BatchService
	addressService   *shippingapp.AddressService
	pricingService   *shippingapp.PricingService
	purchaseService  *shippingapp.PurchaseService
	maxUploadBytes   int64
}

// DefaultMaxUploadBytes caps CSV uploads when no limit is configured
const DefaultMaxUploadBytes = 5 << 20

// NewBatchHandler creates a new BatchHandler
func NewBatchHandler(
	ingestionService *shippingapp.IngestionService,
	batchService *shippingapp.BatchService,
	addressService *shippingapp.AddressService,
	pricingService *shippingapp.PricingService,
	purchaseService *shippingapp.PurchaseService,
) *BatchHandler {
	return &BatchHandler{
		ingestionService: ingestionService,
		batchService:     batchService,
		addressService:   addressService,
		pricingService:   pricingService,
		purchaseService:  purchaseService,
		maxUploadBytes:   DefaultMaxUploadBytes,
	}
}

// WithMaxUploadBytes overrides the per-file upload size cap
func (h *BatchHandler) WithMaxUploadBytes(maxBytes int64) *BatchHandler {
	if maxBytes > 0 {
		h.maxUploadBytes = maxBytes
	}
	return h
}

// toFilter converts list query parameters to a repository filter
func toFilter(req dto.ListRequest) shared.Filter {
	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 {
		filter.PageSize = req.PageSize
	}
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter
}

// UploadResponse is returned after a successful batch upload
type UploadResponse struct {
	Batch         BatchResponse `json:"batch"`
	ShipmentCount int           `json:"shipment_count"`
	Warnings      []string      `json:"warnings,omitempty"`
}

// Upload ingests a CSV file into a new batch
func (h *BatchHandler) Upload(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Upload must include a 'file' form field")
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.maxUploadBytes {
		h.Error(c, http.StatusRequestEntityTooLarge, "UPLOAD_TOO_LARGE", "Uploaded file exceeds the maximum allowed size")
		return
	}

	result, err := h.ingestionService.IngestBatch(c.Request.Context(), ownerID, header.Filename, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, UploadResponse{
		Batch:         toBatchResponse(result.Batch),
		ShipmentCount: result.ShipmentCount,
		Warnings:      result.Warnings,
	})
}

// List returns the owner's batches
func (h *BatchHandler) List(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := toFilter(req)
	page, err := h.batchService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, toBatchResponses(page.Items), page.Total, filter.Page, filter.PageSize)
}

// BatchDetailResponse is a batch together with its shipments
type BatchDetailResponse struct {
	Batch     BatchResponse      `json:"batch"`
	Shipments []ShipmentResponse `json:"shipments"`
}

// Get returns one batch with its shipments
func (h *BatchHandler) Get(c *gin.Context) {
	ownerID, batchID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	detail, err := h.batchService.Get(c.Request.Context(), ownerID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, BatchDetailResponse{
		Batch:     toBatchResponse(detail.Batch),
		Shipments: toShipmentResponses(detail.Shipments),
	})
}

// MarkReady advances a reviewing batch to ready
func (h *BatchHandler) MarkReady(c *gin.Context) {
	ownerID, batchID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	batch, err := h.batchService.MarkReady(c.Request.Context(), ownerID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBatchResponse(batch))
}

// Cancel moves a batch to the cancelled state
func (h *BatchHandler) Cancel(c *gin.Context) {
	ownerID, batchID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	batch, err := h.batchService.Cancel(c.Request.Context(), ownerID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBatchResponse(batch))
}

// Clear removes every shipment from a batch
func (h *BatchHandler) Clear(c *gin.Context) {
	ownerID, batchID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	batch, err := h.batchService.Clear(c.Request.Context(), ownerID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toBatchResponse(batch))
}

// Delete removes a batch and its shipments
func (h *BatchHandler) Delete(c *gin.Context) {
	ownerID, batchID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	if err := h.batchService.Delete(c.Request.Context(), ownerID, batchID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ValidateAddressesRequest selects which address zone to validate
type ValidateAddressesRequest struct {
	Zone string `json:"zone" binding:"omitempty,oneof=from to"`
}

// ValidateAddresses runs the provider chain over a batch's addresses
func (h *BatchHandler) ValidateAddresses(c *gin.Context) {
	ownerID, batchID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	// The body is optional; the recipient zone is the default
	var req ValidateAddressesRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindingError(c, err)
			return
		}
	}
	zone := shipping.AddressZoneTo
	if req.Zone != "" {
		zone = shipping.AddressZone(req.Zone)
	}

	result, err := h.addressService.ValidateBatchAddresses(c.Request.Context(), ownerID, batchID, zone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CalculateCosts assigns the cheapest active service and prices the batch
func (h *BatchHandler) CalculateCosts(c *gin.Context) {
	ownerID, batchID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	result, err := h.pricingService.CalculateCosts(c.Request.Context(), ownerID, batchID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{
		"batch":             toBatchResponse(result.Batch),
		"priced_shipments":  result.PricedShipments,
		"skipped_shipments": result.SkippedShipments,
	})
}

// PurchaseRequest finalizes a batch
type PurchaseRequest struct {
	LabelSize     string `json:"label_size" binding:"required,oneof=letter 4x6"`
	TermsAccepted bool   `json:"terms_accepted"`
}

// Purchase debits the balance and finalizes the batch
func (h *BatchHandler) Purchase(c *gin.Context) {
	ownerID, batchID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	var req PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.purchaseService.Purchase(c.Request.Context(), shippingapp.PurchaseRequest{
		OwnerID:       ownerID,
		BatchID:       batchID,
		LabelSize:     shipping.LabelSize(req.LabelSize),
		TermsAccepted: req.TermsAccepted,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{
		"purchase":      toPurchaseResponse(result.Purchase),
		"batch":         toBatchResponse(result.Batch),
		"balance_after": result.BalanceAfter,
	})
}

// ownerAndID pulls the authenticated owner and the :id path parameter
func (h *BatchHandler) ownerAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid batch ID")
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, id, true
}

// RegisterRoutes registers all batch routes
func (h *BatchHandler) RegisterRoutes(rg *gin.RouterGroup) {
	batches := rg.Group("/batches")
	{
		batches.POST("", h.Upload)
		batches.GET("", h.List)
		batches.GET("/:id", h.Get)
		batches.DELETE("/:id", h.Delete)
		batches.POST("/:id/ready", h.MarkReady)
		batches.POST("/:id/cancel", h.Cancel)
		batches.POST("/:id/clear", h.Clear)
		batches.POST("/:id/validate-addresses", h.ValidateAddresses)
		batches.POST("/:id/calculate-costs", h.CalculateCosts)
		batches.POST("/:id/purchase", h.Purchase)
	}
}

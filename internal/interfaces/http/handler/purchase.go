package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shippingapp "github.com/shipbatch/backend/internal/application/shipping"
	"github.com/shipbatch/backend/internal/interfaces/http/dto"
)

// PurchaseHandler exposes the purchase history
type PurchaseHandler struct {
	BaseHandler
	purchaseService *shippingapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *shippingapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// List returns the owner's purchases, newest first
func (h *PurchaseHandler) List(c *gin.Context) {
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
	page, err := h.purchaseService.List(c.Request.Context(), ownerID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]PurchaseResponse, len(page.Items))
	for i := range page.Items {
		out[i] = toPurchaseResponse(&page.Items[i])
	}
	h.SuccessWithMeta(c, out, page.Total, filter.Page, filter.PageSize)
}

// Get returns one purchase
func (h *PurchaseHandler) Get(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}
	purchaseID, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchaseService.Get(c.Request.Context(), ownerID, purchaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toPurchaseResponse(purchase))
}

// RegisterRoutes registers all purchase routes
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	{
		purchases.GET("", h.List)
		purchases.GET("/:id", h.Get)
	}
}

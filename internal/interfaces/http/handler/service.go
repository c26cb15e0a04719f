package handler

import (
	"github.com/gin-gonic/gin"

	shippingapp "github.com/shipbatch/backend/internal/application/shipping"
)

// ServiceHandler exposes the shipping service catalog and price quotes
type ServiceHandler struct {
	BaseHandler
	pricingService *shippingapp.PricingService
}

// NewServiceHandler creates a new ServiceHandler
func NewServiceHandler(pricingService *shippingapp.PricingService) *ServiceHandler {
	return &ServiceHandler{pricingService: pricingService}
}

// List returns the active service catalog, cheapest first
func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.pricingService.ListActiveServices(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]ServiceResponse, len(services))
	for i := range services {
		out[i] = toServiceResponse(&services[i])
	}
	h.Success(c, out)
}

// QuoteRequest prices a hypothetical package against one service
type QuoteRequest struct {
	ServiceName string `json:"service_name" binding:"required"`
	WeightLbs   int    `json:"weight_lbs" binding:"min=0"`
	WeightOz    int    `json:"weight_oz" binding:"min=0"`
}

// Quote computes a price without touching any shipment
func (h *ServiceHandler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	quote, err := h.pricingService.Quote(c.Request.Context(), shippingapp.QuoteRequest{
		ServiceName: req.ServiceName,
		WeightLbs:   req.WeightLbs,
		WeightOz:    req.WeightOz,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, quote)
}

// RegisterRoutes registers all service catalog routes
func (h *ServiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	services := rg.Group("/services")
	{
		services.GET("", h.List)
		services.POST("/quote", h.Quote)
	}
}

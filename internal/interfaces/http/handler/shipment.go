package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shippingapp "github.com/shipbatch/backend/internal/application/shipping"
	"github.com/shipbatch/backend/internal/domain/shipping"
	"github.com/shipbatch/backend/internal/interfaces/http/dto"
)

// ShipmentHandler handles single-shipment and bulk mutation endpoints
type ShipmentHandler struct {
	BaseHandler
	shipmentService *shippingapp.ShipmentService
	addressService  *shippingapp.AddressService
	bulkService     *shippingapp.BulkService
}

// NewShipmentHandler creates a new ShipmentHandler
func NewShipmentHandler(
	shipmentService *shippingapp.ShipmentService,
	addressService *shippingapp.AddressService,
	bulkService *shippingapp.BulkService,
) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentService: shipmentService,
		addressService:  addressService,
		bulkService:     bulkService,
	}
}

// Get returns one shipment
func (h *ShipmentHandler) Get(c *gin.Context) {
	ownerID, shipmentID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	shipment, err := h.shipmentService.Get(c.Request.Context(), ownerID, shipmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toShipmentResponse(shipment))
}

// UpdateAddressRequest replaces one address zone of a shipment
type UpdateAddressRequest struct {
	Zone    string     `json:"zone" binding:"required,oneof=from to"`
	Address AddressDTO `json:"address" binding:"required"`
}

// UpdateAddress replaces one address zone and revalidates the row
func (h *ShipmentHandler) UpdateAddress(c *gin.Context) {
	ownerID, shipmentID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	var req UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	shipment, err := h.shipmentService.UpdateAddress(c.Request.Context(), shippingapp.UpdateAddressRequest{
		OwnerID:    ownerID,
		ShipmentID: shipmentID,
		Zone:       shipping.AddressZone(req.Zone),
		Address:    req.Address.toDomain(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toShipmentResponse(shipment))
}

// UpdatePackageRequest replaces a shipment's package
type UpdatePackageRequest struct {
	Package PackageDTO `json:"package" binding:"required"`
}

// UpdatePackage replaces the package and revalidates the row
func (h *ShipmentHandler) UpdatePackage(c *gin.Context) {
	ownerID, shipmentID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	var req UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	shipment, err := h.shipmentService.UpdatePackage(c.Request.Context(), shippingapp.UpdatePackageRequest{
		OwnerID:    ownerID,
		ShipmentID: shipmentID,
		Package:    req.Package.toDomain(),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toShipmentResponse(shipment))
}

// UpdateReferenceRequest replaces the free-form reference fields
type UpdateReferenceRequest struct {
	Phone1      string `json:"phone1" binding:"max=50"`
	Phone2      string `json:"phone2" binding:"max=50"`
	OrderNumber string `json:"order_number" binding:"max=100"`
	ItemSKU     string `json:"item_sku" binding:"max=100"`
}

// UpdateReference replaces phones, order number and SKU
func (h *ShipmentHandler) UpdateReference(c *gin.Context) {
	ownerID, shipmentID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	var req UpdateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	shipment, err := h.shipmentService.UpdateReference(c.Request.Context(), shippingapp.UpdateReferenceRequest{
		OwnerID:     ownerID,
		ShipmentID:  shipmentID,
		Phone1:      req.Phone1,
		Phone2:      req.Phone2,
		OrderNumber: req.OrderNumber,
		ItemSKU:     req.ItemSKU,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toShipmentResponse(shipment))
}

// Delete removes one shipment
func (h *ShipmentHandler) Delete(c *gin.Context) {
	ownerID, shipmentID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

	if err := h.shipmentService.Delete(c.Request.Context(), ownerID, shipmentID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ValidateAddress runs the provider chain for one shipment zone
func (h *ShipmentHandler) ValidateAddress(c *gin.Context) {
	ownerID, shipmentID, ok := h.ownerAndID(c)
	if !ok {
		return
	}

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

	shipment, err := h.addressService.ValidateShipmentAddress(c.Request.Context(), ownerID, shipmentID, zone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toShipmentResponse(shipment))
}

// BulkRequest selects shipments and names exactly one mutation
type BulkRequest struct {
	ShipmentIDs []string    `json:"shipment_ids" binding:"required,min=1,dive,uuid"`
	Action      string      `json:"action" binding:"required,oneof=set_address set_package assign_service delete"`
	Zone        string      `json:"zone" binding:"omitempty,oneof=from to"`
	Address     *AddressDTO `json:"address"`
	Package     *PackageDTO `json:"package"`
	Strategy    string      `json:"strategy" binding:"omitempty,oneof=cheapest priority ground"`
}

// Bulk applies one mutation to a selection of shipments atomically
func (h *ShipmentHandler) Bulk(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	ids := make([]uuid.UUID, 0, len(req.ShipmentIDs))
	for _, raw := range req.ShipmentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid shipment ID: "+raw)
			return
		}
		ids = append(ids, id)
	}

	appReq := shippingapp.BulkRequest{
		OwnerID:     ownerID,
		ShipmentIDs: ids,
		Action:      shippingapp.BulkAction(req.Action),
		Zone:        shipping.AddressZone(req.Zone),
		Strategy:    shipping.ServiceStrategy(req.Strategy),
	}
	if req.Address != nil {
		appReq.Address = req.Address.toDomain()
	}
	if req.Package != nil {
		appReq.Package = req.Package.toDomain()
	}
	if appReq.Action == shippingapp.BulkActionAssignService && appReq.Strategy == "" {
		appReq.Strategy = shipping.StrategyCheapest
	}

	result, err := h.bulkService.Execute(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func (h *ShipmentHandler) ownerAndID(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}

	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid shipment ID")
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID")
		return uuid.Nil, uuid.Nil, false
	}
	return ownerID, id, true
}

// RegisterRoutes registers all shipment routes
func (h *ShipmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shipments := rg.Group("/shipments")
	{
		shipments.GET("/:id", h.Get)
		shipments.PUT("/:id/address", h.UpdateAddress)
		shipments.PUT("/:id/package", h.UpdatePackage)
		shipments.PUT("/:id/reference", h.UpdateReference)
		shipments.DELETE("/:id", h.Delete)
		shipments.POST("/:id/validate-address", h.ValidateAddress)
		shipments.POST("/bulk", h.Bulk)
	}
}

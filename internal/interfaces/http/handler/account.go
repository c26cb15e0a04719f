package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	accountapp "github.com/shipbatch/backend/internal/application/account"
	"github.com/shipbatch/backend/internal/interfaces/http/dto"
)

// AccountHandler exposes balance reads and saved presets
type AccountHandler struct {
	BaseHandler
	balanceService *accountapp.BalanceService
	presetService  *accountapp.PresetService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(balanceService *accountapp.BalanceService, presetService *accountapp.PresetService) *AccountHandler {
	return &AccountHandler{
		balanceService: balanceService,
		presetService:  presetService,
	}
}

// GetBalance returns the account's prepaid balance
func (h *AccountHandler) GetBalance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	balance, err := h.balanceService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balance)
}

// SaveAddressPresetRequest creates or updates an address preset
type SaveAddressPresetRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	FirstName    string `json:"first_name" binding:"required,max=100"`
	LastName     string `json:"last_name" binding:"max=100"`
	AddressLine1 string `json:"address_line1" binding:"required,max=200"`
	AddressLine2 string `json:"address_line2" binding:"max=200"`
	City         string `json:"city" binding:"required,max=100"`
	State        string `json:"state" binding:"required,us_state"`
	ZipCode      string `json:"zip_code" binding:"required,us_zip"`
	Phone        string `json:"phone" binding:"max=50"`
	IsDefault    bool   `json:"is_default"`
}

func (h *AccountHandler) saveAddressPreset(c *gin.Context, presetID uuid.UUID) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SaveAddressPresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	preset, err := h.presetService.SaveAddress(c.Request.Context(), accountapp.SaveAddressRequest{
		OwnerID:      ownerID,
		ID:           presetID,
		Name:         req.Name,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		AddressLine1: req.AddressLine1,
		AddressLine2: req.AddressLine2,
		City:         req.City,
		State:        req.State,
		ZipCode:      req.ZipCode,
		Phone:        req.Phone,
		IsDefault:    req.IsDefault,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if presetID == uuid.Nil {
		h.Created(c, toSavedAddressResponse(preset))
	} else {
		h.Success(c, toSavedAddressResponse(preset))
	}
}

// CreateAddressPreset creates a new address preset
func (h *AccountHandler) CreateAddressPreset(c *gin.Context) {
	h.saveAddressPreset(c, uuid.Nil)
}

// UpdateAddressPreset updates an existing address preset
func (h *AccountHandler) UpdateAddressPreset(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	h.saveAddressPreset(c, id)
}

// ListAddressPresets returns the owner's address presets
func (h *AccountHandler) ListAddressPresets(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	presets, err := h.presetService.ListAddresses(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]SavedAddressResponse, len(presets))
	for i := range presets {
		out[i] = toSavedAddressResponse(&presets[i])
	}
	h.Success(c, out)
}

// DeleteAddressPreset removes one address preset
func (h *AccountHandler) DeleteAddressPreset(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.presetService.DeleteAddress(c.Request.Context(), ownerID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// SavePackagePresetRequest creates or updates a package preset
type SavePackagePresetRequest struct {
	Name      string          `json:"name" binding:"required,max=100"`
	Length    decimal.Decimal `json:"length" binding:"required"`
	Width     decimal.Decimal `json:"width" binding:"required"`
	Height    decimal.Decimal `json:"height" binding:"required"`
	WeightLbs int             `json:"weight_lbs" binding:"min=0"`
	WeightOz  int             `json:"weight_oz" binding:"min=0"`
	IsDefault bool            `json:"is_default"`
}

func (h *AccountHandler) savePackagePreset(c *gin.Context, presetID uuid.UUID) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req SavePackagePresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	preset, err := h.presetService.SavePackage(c.Request.Context(), accountapp.SavePackageRequest{
		OwnerID:   ownerID,
		ID:        presetID,
		Name:      req.Name,
		Length:    req.Length,
		Width:     req.Width,
		Height:    req.Height,
		WeightLbs: req.WeightLbs,
		WeightOz:  req.WeightOz,
		IsDefault: req.IsDefault,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if presetID == uuid.Nil {
		h.Created(c, toSavedPackageResponse(preset))
	} else {
		h.Success(c, toSavedPackageResponse(preset))
	}
}

// CreatePackagePreset creates a new package preset
func (h *AccountHandler) CreatePackagePreset(c *gin.Context) {
	h.savePackagePreset(c, uuid.Nil)
}

// UpdatePackagePreset updates an existing package preset
func (h *AccountHandler) UpdatePackagePreset(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	h.savePackagePreset(c, id)
}

// ListPackagePresets returns the owner's package presets
func (h *AccountHandler) ListPackagePresets(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	presets, err := h.presetService.ListPackages(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	out := make([]SavedPackageResponse, len(presets))
	for i := range presets {
		out[i] = toSavedPackageResponse(&presets[i])
	}
	h.Success(c, out)
}

// DeletePackagePreset removes one package preset
func (h *AccountHandler) DeletePackagePreset(c *gin.Context) {
	ownerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.presetService.DeletePackage(c.Request.Context(), ownerID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *AccountHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	var idReq dto.IDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		h.BadRequest(c, "Invalid preset ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idReq.ID)
	if err != nil {
		h.BadRequest(c, "Invalid preset ID")
		return uuid.Nil, false
	}
	return id, true
}

// RegisterRoutes registers all account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup) {
	account := rg.Group("/account")
	{
		account.GET("/balance", h.GetBalance)

		addresses := account.Group("/addresses")
		{
			addresses.GET("", h.ListAddressPresets)
			addresses.POST("", h.CreateAddressPreset)
			addresses.PUT("/:id", h.UpdateAddressPreset)
			addresses.DELETE("/:id", h.DeleteAddressPreset)
		}

		packages := account.Group("/packages")
		{
			packages.GET("", h.ListPackagePresets)
			packages.POST("", h.CreatePackagePreset)
			packages.PUT("/:id", h.UpdatePackagePreset)
			packages.DELETE("/:id", h.DeletePackagePreset)
		}
	}
}

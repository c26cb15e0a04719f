package handler

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shipbatch/backend/internal/domain/account"
	"github.com/shipbatch/backend/internal/domain/shipping"
)

// AddressDTO carries one address zone over the wire
type AddressDTO struct {
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
}

func toAddressDTO(a shipping.Address) AddressDTO {
	return AddressDTO{
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
	}
}

func (d AddressDTO) toDomain() shipping.Address {
	return shipping.Address{
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		AddressLine1: d.AddressLine1,
		AddressLine2: d.AddressLine2,
		City:         d.City,
		State:        d.State,
		ZipCode:      d.ZipCode,
	}
}

// PackageDTO carries package dimensions and weight over the wire
type PackageDTO struct {
	Length    decimal.Decimal `json:"length"`
	Width     decimal.Decimal `json:"width"`
	Height    decimal.Decimal `json:"height"`
	WeightLbs int             `json:"weight_lbs"`
	WeightOz  int             `json:"weight_oz"`
}

func toPackageDTO(p shipping.Package) PackageDTO {
	return PackageDTO{
		Length:    p.Length,
		Width:     p.Width,
		Height:    p.Height,
		WeightLbs: p.WeightLbs,
		WeightOz:  p.WeightOz,
	}
}

func (d PackageDTO) toDomain() shipping.Package {
	return shipping.Package{
		Length:    d.Length,
		Width:     d.Width,
		Height:    d.Height,
		WeightLbs: d.WeightLbs,
		WeightOz:  d.WeightOz,
	}
}

// BatchResponse is the API shape of a shipment batch
type BatchResponse struct {
	ID             string          `json:"id"`
	Filename       string          `json:"filename"`
	Status         string          `json:"status"`
	TotalShipments int             `json:"total_shipments"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	PurchasedAt    *time.Time      `json:"purchased_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func toBatchResponse(b *shipping.ShipmentBatch) BatchResponse {
	return BatchResponse{
		ID:             b.ID.String(),
		Filename:       b.Filename,
		Status:         b.Status.String(),
		TotalShipments: b.TotalShipments,
		TotalCost:      b.TotalCost,
		PurchasedAt:    b.PurchasedAt,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

func toBatchResponses(batches []shipping.ShipmentBatch) []BatchResponse {
	out := make([]BatchResponse, len(batches))
	for i := range batches {
		out[i] = toBatchResponse(&batches[i])
	}
	return out
}

// AddressReviewResponse is the stored provider verdict for one zone
type AddressReviewResponse struct {
	Valid      bool        `json:"valid"`
	Provider   string      `json:"provider"`
	Confidence string      `json:"confidence,omitempty"`
	Normalized *AddressDTO `json:"normalized,omitempty"`
	Error      string      `json:"error,omitempty"`
	Disclaimer string      `json:"disclaimer,omitempty"`
}

func toAddressReviewResponse(r *shipping.AddressReview) *AddressReviewResponse {
	if r == nil {
		return nil
	}
	resp := &AddressReviewResponse{
		Valid:      r.Valid,
		Provider:   r.Provider,
		Confidence: r.Confidence,
		Error:      r.Error,
		Disclaimer: r.Disclaimer,
	}
	if r.Normalized != nil {
		normalized := toAddressDTO(*r.Normalized)
		resp.Normalized = &normalized
	}
	return resp
}

// ShipmentResponse is the API shape of one shipment row
type ShipmentResponse struct {
	ID                 string                 `json:"id"`
	BatchID            string                 `json:"batch_id"`
	RowNumber          int                    `json:"row_number"`
	From               AddressDTO             `json:"from"`
	To                 AddressDTO             `json:"to"`
	Package            PackageDTO             `json:"package"`
	Phone1             string                 `json:"phone1,omitempty"`
	Phone2             string                 `json:"phone2,omitempty"`
	OrderNumber        string                 `json:"order_number,omitempty"`
	ItemSKU            string                 `json:"item_sku,omitempty"`
	ServiceName        string                 `json:"service_name,omitempty"`
	ShippingCost       decimal.Decimal        `json:"shipping_cost"`
	ValidationStatus   string                 `json:"validation_status"`
	ValidationErrors   []string               `json:"validation_errors,omitempty"`
	ValidationWarnings []string               `json:"validation_warnings,omitempty"`
	FromAddressReview  *AddressReviewResponse `json:"from_address_review,omitempty"`
	ToAddressReview    *AddressReviewResponse `json:"to_address_review,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

func toShipmentResponse(s *shipping.Shipment) ShipmentResponse {
	return ShipmentResponse{
		ID:                 s.ID.String(),
		BatchID:            s.BatchID.String(),
		RowNumber:          s.RowNumber,
		From:               toAddressDTO(s.From),
		To:                 toAddressDTO(s.To),
		Package:            toPackageDTO(s.Pkg),
		Phone1:             s.Phone1,
		Phone2:             s.Phone2,
		OrderNumber:        s.OrderNumber,
		ItemSKU:            s.ItemSKU,
		ServiceName:        s.ServiceName,
		ShippingCost:       s.ShippingCost,
		ValidationStatus:   s.ValidationStatus.String(),
		ValidationErrors:   s.ValidationErrors,
		ValidationWarnings: s.ValidationWarnings,
		FromAddressReview:  toAddressReviewResponse(s.FromAddressReview),
		ToAddressReview:    toAddressReviewResponse(s.ToAddressReview),
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}

func toShipmentResponses(shipments []shipping.Shipment) []ShipmentResponse {
	out := make([]ShipmentResponse, len(shipments))
	for i := range shipments {
		out[i] = toShipmentResponse(&shipments[i])
	}
	return out
}

// ServiceResponse is the API shape of a shipping service option
type ServiceResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	ServiceType     string          `json:"service_type"`
	Description     string          `json:"description,omitempty"`
	BasePrice       decimal.Decimal `json:"base_price"`
	PerOzRate       decimal.Decimal `json:"per_oz_rate"`
	DeliveryDaysMin int             `json:"delivery_days_min"`
	DeliveryDaysMax int             `json:"delivery_days_max"`
}

func toServiceResponse(s *shipping.ShippingService) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID.String(),
		Name:            s.Name,
		ServiceType:     s.ServiceType.String(),
		Description:     s.Description,
		BasePrice:       s.BasePrice,
		PerOzRate:       s.PerOzRate,
		DeliveryDaysMin: s.DeliveryDaysMin,
		DeliveryDaysMax: s.DeliveryDaysMax,
	}
}

// PurchaseResponse is the API shape of a finalized purchase
type PurchaseResponse struct {
	ID          string          `json:"id"`
	BatchID     string          `json:"batch_id"`
	LabelSize   string          `json:"label_size"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	TotalLabels int             `json:"total_labels"`
	ArtifactRef string          `json:"artifact_ref,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toPurchaseResponse(p *shipping.LabelPurchase) PurchaseResponse {
	return PurchaseResponse{
		ID:          p.ID.String(),
		BatchID:     p.BatchID.String(),
		LabelSize:   string(p.LabelSize),
		TotalAmount: p.TotalAmount,
		TotalLabels: p.TotalLabels,
		ArtifactRef: p.ArtifactRef,
		CreatedAt:   p.CreatedAt,
	}
}

// SavedAddressResponse is the API shape of an address preset
type SavedAddressResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name,omitempty"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Phone        string `json:"phone,omitempty"`
	IsDefault    bool   `json:"is_default"`
}

func toSavedAddressResponse(a *account.SavedAddress) SavedAddressResponse {
	return SavedAddressResponse{
		ID:           a.ID.String(),
		Name:         a.Name,
		FirstName:    a.FirstName,
		LastName:     a.LastName,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		ZipCode:      a.ZipCode,
		Phone:        a.Phone,
		IsDefault:    a.IsDefault,
	}
}

// SavedPackageResponse is the API shape of a package preset
type SavedPackageResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Length    decimal.Decimal `json:"length"`
	Width     decimal.Decimal `json:"width"`
	Height    decimal.Decimal `json:"height"`
	WeightLbs int             `json:"weight_lbs"`
	WeightOz  int             `json:"weight_oz"`
	IsDefault bool            `json:"is_default"`
}

func toSavedPackageResponse(p *account.SavedPackage) SavedPackageResponse {
	return SavedPackageResponse{
		ID:        p.ID.String(),
		Name:      p.Name,
		Length:    p.Length,
		Width:     p.Width,
		Height:    p.Height,
		WeightLbs: p.WeightLbs,
		WeightOz:  p.WeightOz,
		IsDefault: p.IsDefault,
	}
}

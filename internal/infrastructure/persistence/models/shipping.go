package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shipbatch/backend/internal/domain/shipping"
)

// BatchModel is the persistence model for shipment batches
type BatchModel struct {
	OwnedAggregateModel
	Filename       string               `gorm:"type:varchar(255);not null"`
	Status         shipping.BatchStatus `gorm:"type:varchar(20);not null;default:'uploaded';index"`
	TotalShipments int                  `gorm:"not null;default:0"`
	TotalCost      decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	PurchasedAt    *time.Time
}

// TableName returns the table name for GORM
func (BatchModel) TableName() string {
	return "shipment_batches"
}

// ToDomain converts the persistence model to a domain ShipmentBatch
func (m *BatchModel) ToDomain() *shipping.ShipmentBatch {
	return &shipping.ShipmentBatch{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Filename:           m.Filename,
		Status:             m.Status,
		TotalShipments:     m.TotalShipments,
		TotalCost:          m.TotalCost,
		PurchasedAt:        m.PurchasedAt,
	}
}

// BatchModelFromDomain converts a domain ShipmentBatch to the persistence model
func BatchModelFromDomain(b *shipping.ShipmentBatch) *BatchModel {
	m := &BatchModel{
		Filename:       b.Filename,
		Status:         b.Status,
		TotalShipments: b.TotalShipments,
		TotalCost:      b.TotalCost,
		PurchasedAt:    b.PurchasedAt,
	}
	m.FromDomainOwnedAggregateRoot(b.OwnedAggregateRoot)
	return m
}

// ShipmentModel is the persistence model for shipments. Address reviews
// and validation messages are stored as JSON documents.
type ShipmentModel struct {
	BaseModel
	BatchID   uuid.UUID `gorm:"type:uuid;not null;index"`
	RowNumber int       `gorm:"not null"`

	FromFirstName    string `gorm:"type:varchar(100)"`
	FromLastName     string `gorm:"type:varchar(100)"`
	FromAddressLine1 string `gorm:"type:varchar(255)"`
	FromAddressLine2 string `gorm:"type:varchar(255)"`
	FromCity         string `gorm:"type:varchar(100)"`
	FromState        string `gorm:"type:varchar(2)"`
	FromZipCode      string `gorm:"type:varchar(10)"`

	ToFirstName    string `gorm:"type:varchar(100)"`
	ToLastName     string `gorm:"type:varchar(100)"`
	ToAddressLine1 string `gorm:"type:varchar(255)"`
	ToAddressLine2 string `gorm:"type:varchar(255)"`
	ToCity         string `gorm:"type:varchar(100)"`
	ToState        string `gorm:"type:varchar(2)"`
	ToZipCode      string `gorm:"type:varchar(10)"`

	Length    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Width     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Height    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	WeightLbs int             `gorm:"not null;default:0"`
	WeightOz  int             `gorm:"not null;default:0"`

	Phone1      string `gorm:"type:varchar(50)"`
	Phone2      string `gorm:"type:varchar(50)"`
	OrderNumber string `gorm:"type:varchar(100);index"`
	ItemSKU     string `gorm:"type:varchar(100)"`

	ServiceName  string          `gorm:"type:varchar(100)"`
	ShippingCost decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`

	ValidationStatus   shipping.ValidationStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ValidationErrors   string                    `gorm:"type:jsonb"`
	ValidationWarnings string                    `gorm:"type:jsonb"`

	FromAddressValidated bool   `gorm:"not null;default:false"`
	ToAddressValidated   bool   `gorm:"not null;default:false"`
	FromAddressReview    string `gorm:"type:jsonb"`
	ToAddressReview      string `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (ShipmentModel) TableName() string {
	return "shipments"
}

// ToDomain converts the persistence model to a domain Shipment
func (m *ShipmentModel) ToDomain() *shipping.Shipment {
	return &shipping.Shipment{
		BaseEntity: m.BaseModel.ToDomain(),
		BatchID:    m.BatchID,
		RowNumber:  m.RowNumber,
		From: shipping.Address{
			FirstName:    m.FromFirstName,
			LastName:     m.FromLastName,
			AddressLine1: m.FromAddressLine1,
			AddressLine2: m.FromAddressLine2,
			City:         m.FromCity,
			State:        m.FromState,
			ZipCode:      m.FromZipCode,
		},
		To: shipping.Address{
			FirstName:    m.ToFirstName,
			LastName:     m.ToLastName,
			AddressLine1: m.ToAddressLine1,
			AddressLine2: m.ToAddressLine2,
			City:         m.ToCity,
			State:        m.ToState,
			ZipCode:      m.ToZipCode,
		},
		Pkg: shipping.Package{
			Length:    m.Length,
			Width:     m.Width,
			Height:    m.Height,
			WeightLbs: m.WeightLbs,
			WeightOz:  m.WeightOz,
		},
		Phone1:               m.Phone1,
		Phone2:               m.Phone2,
		OrderNumber:          m.OrderNumber,
		ItemSKU:              m.ItemSKU,
		ServiceName:          m.ServiceName,
		ShippingCost:         m.ShippingCost,
		ValidationStatus:     m.ValidationStatus,
		ValidationErrors:     unmarshalStrings(m.ValidationErrors),
		ValidationWarnings:   unmarshalStrings(m.ValidationWarnings),
		FromAddressValidated: m.FromAddressValidated,
		ToAddressValidated:   m.ToAddressValidated,
		FromAddressReview:    unmarshalReview(m.FromAddressReview),
		ToAddressReview:      unmarshalReview(m.ToAddressReview),
	}
}

// ShipmentModelFromDomain converts a domain Shipment to the persistence model
func ShipmentModelFromDomain(s *shipping.Shipment) *ShipmentModel {
	m := &ShipmentModel{
		BatchID:   s.BatchID,
		RowNumber: s.RowNumber,

		FromFirstName:    s.From.FirstName,
		FromLastName:     s.From.LastName,
		FromAddressLine1: s.From.AddressLine1,
		FromAddressLine2: s.From.AddressLine2,
		FromCity:         s.From.City,
		FromState:        s.From.State,
		FromZipCode:      s.From.ZipCode,

		ToFirstName:    s.To.FirstName,
		ToLastName:     s.To.LastName,
		ToAddressLine1: s.To.AddressLine1,
		ToAddressLine2: s.To.AddressLine2,
		ToCity:         s.To.City,
		ToState:        s.To.State,
		ToZipCode:      s.To.ZipCode,

		Length:    s.Pkg.Length,
		Width:     s.Pkg.Width,
		Height:    s.Pkg.Height,
		WeightLbs: s.Pkg.WeightLbs,
		WeightOz:  s.Pkg.WeightOz,

		Phone1:      s.Phone1,
		Phone2:      s.Phone2,
		OrderNumber: s.OrderNumber,
		ItemSKU:     s.ItemSKU,

		ServiceName:  s.ServiceName,
		ShippingCost: s.ShippingCost,

		ValidationStatus:   s.ValidationStatus,
		ValidationErrors:   marshalStrings(s.ValidationErrors),
		ValidationWarnings: marshalStrings(s.ValidationWarnings),

		FromAddressValidated: s.FromAddressValidated,
		ToAddressValidated:   s.ToAddressValidated,
		FromAddressReview:    marshalReview(s.FromAddressReview),
		ToAddressReview:      marshalReview(s.ToAddressReview),
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// ServiceModel is the persistence model for the shipping service catalog
type ServiceModel struct {
	AggregateModel
	Name            string               `gorm:"type:varchar(100);not null;uniqueIndex"`
	ServiceType     shipping.ServiceType `gorm:"type:varchar(20);not null"`
	Description     string               `gorm:"type:text"`
	BasePrice       decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	PerOzRate       decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive        bool                 `gorm:"not null;default:true;index"`
	DeliveryDaysMin int                  `gorm:"not null;default:0"`
	DeliveryDaysMax int                  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (ServiceModel) TableName() string {
	return "shipping_services"
}

// ToDomain converts the persistence model to a domain ShippingService
func (m *ServiceModel) ToDomain() *shipping.ShippingService {
	return &shipping.ShippingService{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		ServiceType:       m.ServiceType,
		Description:       m.Description,
		BasePrice:         m.BasePrice,
		PerOzRate:         m.PerOzRate,
		IsActive:          m.IsActive,
		DeliveryDaysMin:   m.DeliveryDaysMin,
		DeliveryDaysMax:   m.DeliveryDaysMax,
	}
}

// ServiceModelFromDomain converts a domain ShippingService to the persistence model
func ServiceModelFromDomain(s *shipping.ShippingService) *ServiceModel {
	m := &ServiceModel{
		Name:            s.Name,
		ServiceType:     s.ServiceType,
		Description:     s.Description,
		BasePrice:       s.BasePrice,
		PerOzRate:       s.PerOzRate,
		IsActive:        s.IsActive,
		DeliveryDaysMin: s.DeliveryDaysMin,
		DeliveryDaysMax: s.DeliveryDaysMax,
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	return m
}

// PurchaseModel is the persistence model for label purchases
type PurchaseModel struct {
	OwnedAggregateModel
	BatchID       uuid.UUID          `gorm:"type:uuid;not null;index"`
	LabelSize     shipping.LabelSize `gorm:"type:varchar(10);not null"`
	TotalAmount   decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	TotalLabels   int                `gorm:"not null;default:0"`
	TermsAccepted bool               `gorm:"not null;default:false"`
	ArtifactRef   string             `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "label_purchases"
}

// ToDomain converts the persistence model to a domain LabelPurchase
func (m *PurchaseModel) ToDomain() *shipping.LabelPurchase {
	return &shipping.LabelPurchase{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		BatchID:            m.BatchID,
		LabelSize:          m.LabelSize,
		TotalAmount:        m.TotalAmount,
		TotalLabels:        m.TotalLabels,
		TermsAccepted:      m.TermsAccepted,
		ArtifactRef:        m.ArtifactRef,
	}
}

// PurchaseModelFromDomain converts a domain LabelPurchase to the persistence model
func PurchaseModelFromDomain(p *shipping.LabelPurchase) *PurchaseModel {
	m := &PurchaseModel{
		BatchID:       p.BatchID,
		LabelSize:     p.LabelSize,
		TotalAmount:   p.TotalAmount,
		TotalLabels:   p.TotalLabels,
		TermsAccepted: p.TermsAccepted,
		ArtifactRef:   p.ArtifactRef,
	}
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	return m
}

func marshalStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func unmarshalStrings(data string) []string {
	if data == "" || data == "[]" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil
	}
	return values
}

func marshalReview(review *shipping.AddressReview) string {
	if review == nil {
		return ""
	}
	data, err := json.Marshal(review)
	if err != nil {
		return ""
	}
	return string(data)
}

func unmarshalReview(data string) *shipping.AddressReview {
	if data == "" {
		return nil
	}
	var review shipping.AddressReview
	if err := json.Unmarshal([]byte(data), &review); err != nil {
		return nil
	}
	return &review
}

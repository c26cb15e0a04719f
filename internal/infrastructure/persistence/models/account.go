package models

import (
	"github.com/shopspring/decimal"

	"github.com/shipbatch/backend/internal/domain/account"
)

// UserModel is the persistence model for users
type UserModel struct {
	AggregateModel
	Username string          `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email    string          `gorm:"type:varchar(200);index"`
	Balance  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *account.User {
	return &account.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Username:          m.Username,
		Email:             m.Email,
		Balance:           m.Balance,
	}
}

// UserModelFromDomain converts a domain User to the persistence model
func UserModelFromDomain(u *account.User) *UserModel {
	m := &UserModel{
		Username: u.Username,
		Email:    u.Email,
		Balance:  u.Balance,
	}
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	return m
}

// SavedAddressModel is the persistence model for address presets
type SavedAddressModel struct {
	OwnedAggregateModel
	Name         string `gorm:"type:varchar(100);not null"`
	FirstName    string `gorm:"type:varchar(100);not null"`
	LastName     string `gorm:"type:varchar(100)"`
	AddressLine1 string `gorm:"type:varchar(255);not null"`
	AddressLine2 string `gorm:"type:varchar(255)"`
	City         string `gorm:"type:varchar(100);not null"`
	State        string `gorm:"type:varchar(2);not null"`
	ZipCode      string `gorm:"type:varchar(10);not null"`
	Phone        string `gorm:"type:varchar(50)"`
	IsDefault    bool   `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (SavedAddressModel) TableName() string {
	return "saved_addresses"
}

// ToDomain converts the persistence model to a domain SavedAddress
func (m *SavedAddressModel) ToDomain() *account.SavedAddress {
	return &account.SavedAddress{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Name:               m.Name,
		FirstName:          m.FirstName,
		LastName:           m.LastName,
		AddressLine1:       m.AddressLine1,
		AddressLine2:       m.AddressLine2,
		City:               m.City,
		State:              m.State,
		ZipCode:            m.ZipCode,
		Phone:              m.Phone,
		IsDefault:          m.IsDefault,
	}
}

// SavedAddressModelFromDomain converts a domain SavedAddress to the persistence model
func SavedAddressModelFromDomain(a *account.SavedAddress) *SavedAddressModel {
	m := &SavedAddressModel{
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
	m.FromDomainOwnedAggregateRoot(a.OwnedAggregateRoot)
	return m
}

// SavedPackageModel is the persistence model for package presets
type SavedPackageModel struct {
	OwnedAggregateModel
	Name      string          `gorm:"type:varchar(100);not null"`
	Length    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Width     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Height    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	WeightLbs int             `gorm:"not null;default:0"`
	WeightOz  int             `gorm:"not null;default:0"`
	IsDefault bool            `gorm:"not null;default:false;index"`
}

// TableName returns the table name for GORM
func (SavedPackageModel) TableName() string {
	return "saved_packages"
}

// ToDomain converts the persistence model to a domain SavedPackage
func (m *SavedPackageModel) ToDomain() *account.SavedPackage {
	return &account.SavedPackage{
		OwnedAggregateRoot: m.ToDomainOwnedAggregateRoot(),
		Name:               m.Name,
		Length:             m.Length,
		Width:              m.Width,
		Height:             m.Height,
		WeightLbs:          m.WeightLbs,
		WeightOz:           m.WeightOz,
		IsDefault:          m.IsDefault,
	}
}

// SavedPackageModelFromDomain converts a domain SavedPackage to the persistence model
func SavedPackageModelFromDomain(p *account.SavedPackage) *SavedPackageModel {
	m := &SavedPackageModel{
		Name:      p.Name,
		Length:    p.Length,
		Width:     p.Width,
		Height:    p.Height,
		WeightLbs: p.WeightLbs,
		WeightOz:  p.WeightOz,
		IsDefault: p.IsDefault,
	}
	m.FromDomainOwnedAggregateRoot(p.OwnedAggregateRoot)
	return m
}

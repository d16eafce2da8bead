package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale statuses (customer-facing vocabulary, lowercase). Kept deliberately
// separate from the Order status enum — see internal/translation.
const (
	SalePending    = "pending"
	SaleProcessing = "processing"
	SaleShipped    = "shipped"
	SaleDelivered  = "delivered"
	SaleCancelled  = "cancelled"
	SalePaid       = "paid"
)

var AllowedSaleStatuses = []string{
	SalePending, SaleProcessing, SaleShipped, SaleDelivered, SaleCancelled, SalePaid,
}

// Sale represents a customer purchase. Item unit prices are captured at
// creation time and never recalculated from the current product price.
type Sale struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status     string          `gorm:"type:varchar(20);not null;default:'pending'"`
	// Shipping address (street/city/postalCode only — the Order carries the
	// extended address with country and phone).
	Street       string
	City         string
	PostalCode   string
	ShippingCost decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	SaleDate     time.Time       `gorm:"autoCreateTime"`

	Customer *User      `gorm:"foreignKey:CustomerID"`
	Items    []SaleItem `gorm:"foreignKey:SaleID"`
}

func (Sale) TableName() string { return "sales" }

// SaleItem is one purchased line with the unit price frozen at purchase.
type SaleItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (SaleItem) TableName() string { return "sale_items" }

func ValidSaleStatus(s string) bool {
	for _, allowed := range AllowedSaleStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

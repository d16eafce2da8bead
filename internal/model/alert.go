package model

import (
	"time"

	"github.com/google/uuid"
)

// Alert types and reference models for the back-office alert feed.
const (
	AlertVenta = "venta"
	AlertPago  = "pago"

	AlertRefSale    = "Sale"
	AlertRefPayment = "Payment"
)

// Alert is a back-office notification created asynchronously by the worker
// pool when sales and payments are registered. Read-only projection data,
// not business state.
type Alert struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type           string    `gorm:"type:varchar(10);not null;index"`
	ReferenceID    uuid.UUID `gorm:"type:uuid;not null"`
	ReferenceModel string    `gorm:"type:varchar(20);not null"`
	Title          string    `gorm:"not null"`
	Message        string
	Link           string    `gorm:"not null"`
	Priority       string    `gorm:"type:varchar(10);not null;default:'media'"` // alta | media | baja
	CreatedAt      time.Time `gorm:"index"`
}

func (Alert) TableName() string { return "alerts" }

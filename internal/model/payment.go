package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment statuses.
const (
	PaymentPending    = "pending"
	PaymentProcessing = "processing"
	PaymentCompleted  = "completed"
	PaymentFailed     = "failed"
	PaymentRefunded   = "refunded"
)

var AllowedPaymentStatuses = []string{
	PaymentPending, PaymentProcessing, PaymentCompleted, PaymentFailed, PaymentRefunded,
}

// AllowedPaymentMethods for the settlement endpoint (includes efectivo,
// unlike the checkout enum).
var AllowedPaymentMethods = []string{"tarjeta", "paypal", "transferencia", "efectivo"}

// Payment records one attempt to settle a Sale/Order pair. Failed attempts
// are kept: they are the audit trail of the simulated gateway.
type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	OrderID       *uuid.UUID `gorm:"type:uuid;index"`
	PaymentMethod string     `gorm:"type:varchar(20);not null"`
	Status        string     `gorm:"type:varchar(20);not null;default:'pending'"`
	// Amount always equals the Sale total at creation time.
	Amount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'EUR'"`
	TransactionID string
	Last4Digits   string
	CardType      string
	PaypalEmail   string
	PaymentDate   time.Time `gorm:"autoCreateTime;index"`
	ErrorMessage  *string

	Sale  *Sale  `gorm:"foreignKey:SaleID"`
	Order *Order `gorm:"foreignKey:OrderID"`
}

func (Payment) TableName() string { return "payments" }

func ValidPaymentStatus(s string) bool {
	for _, allowed := range AllowedPaymentStatuses {
		if s == allowed {
			return true
		}
	}
	return false
}

func ValidPaymentMethod(m string) bool {
	for _, allowed := range AllowedPaymentMethods {
		if m == allowed {
			return true
		}
	}
	return false
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Order statuses (checkout-facing vocabulary, uppercase). Not interchangeable
// with Sale statuses — map explicitly via internal/translation.
const (
	OrderPending   = "PENDING"
	OrderPaid      = "PAID"
	OrderShipped   = "SHIPPED"
	OrderDelivered = "DELIVERED"
	OrderCancelled = "CANCELLED"
)

// Payment methods accepted at checkout (efectivo is payment-endpoint only).
var AllowedOrderPaymentMethods = []string{"tarjeta", "paypal", "transferencia"}

// Order wraps a Sale for checkout: payment method, shipping cost and its own
// status lifecycle.
type Order struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SaleID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index"`

	Street     string
	City       string
	PostalCode string
	Country    string
	Phone      string

	PaymentMethod  string          `gorm:"type:varchar(20);not null;default:'tarjeta'"`
	PaymentDetails datatypes.JSON  `gorm:"type:jsonb"`
	ShippingCost   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Total          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status         string          `gorm:"type:varchar(20);not null;default:'PENDING'"`
	PaidAt         *time.Time
	CreatedAt      time.Time `gorm:"index"`

	Sale  *Sale       `gorm:"foreignKey:SaleID"`
	User  *User       `gorm:"foreignKey:UserID"`
	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "orders" }

// OrderItem mirrors the Sale line with the product name denormalized for
// display after the product is edited or removed.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`

	Product *Product `gorm:"foreignKey:ProductID"`
}

func (OrderItem) TableName() string { return "order_items" }

func ValidOrderPaymentMethod(m string) bool {
	for _, allowed := range AllowedOrderPaymentMethods {
		if m == allowed {
			return true
		}
	}
	return false
}

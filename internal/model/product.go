package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product categories accepted by the catalog.
var AllowedCategories = []string{"Informática", "Oficina", "Audiovisual"}

// Product is a catalog item. Stock is never mutated directly by handlers:
// every change goes through a repository stock operation paired with exactly
// one InventoryMovement row.
type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Category    string    `gorm:"not null;index"`
	Name        string    `gorm:"not null;index"`
	Description *string
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Stock       int             `gorm:"not null;default:2"`
	MinStock    int             `gorm:"not null;default:2"`
	MaxStock    int             `gorm:"not null;default:10"`
	// Image is an opaque URL returned by the external asset store.
	Image     string
	CreatedAt time.Time
}

func (Product) TableName() string { return "products" }

// ValidCategory reports whether c is one of the allowed catalog categories.
func ValidCategory(c string) bool {
	for _, allowed := range AllowedCategories {
		if c == allowed {
			return true
		}
	}
	return false
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Inventory movement types.
const (
	MovementEntrada    = "entrada"
	MovementSalida     = "salida"
	MovementAjuste     = "ajuste"
	MovementDevolucion = "devolucion"
)

// AllowedMovementTypes lists the accepted values for the admin movement endpoint.
var AllowedMovementTypes = []string{MovementEntrada, MovementSalida, MovementAjuste, MovementDevolucion}

// InventoryMovement is the append-only stock ledger. One row per stock
// mutation, capturing the before/after snapshot. Rows are never updated or
// deleted — reversals create inverse entries.
type InventoryMovement struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(20);not null"`
	// Quantity is always |NewStock − PreviousStock|; the sign lives in Type.
	Quantity      int `gorm:"not null"`
	PreviousStock int `gorm:"not null"`
	NewStock      int `gorm:"not null"`
	Reason        string
	UserID        *uuid.UUID `gorm:"type:uuid"`
	SaleID        *uuid.UUID `gorm:"type:uuid;index"`
	Date          time.Time  `gorm:"autoCreateTime;index"`

	Product *Product `gorm:"foreignKey:ProductID"`
	User    *User    `gorm:"foreignKey:UserID"`
}

func (InventoryMovement) TableName() string { return "inventory_movements" }

func ValidMovementType(t string) bool {
	for _, allowed := range AllowedMovementTypes {
		if t == allowed {
			return true
		}
	}
	return false
}

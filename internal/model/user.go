package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleCliente = "cliente"
	RoleAdmin   = "admin"
)

// User stores storefront accounts. Rol: "cliente" | "admin".
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(10);not null;default:'cliente'"`
	Phone        string
	Address      string
	City         string
	PostalCode   string
	// Image is the profile picture URL in the external asset store.
	Image     string
	CreatedAt time.Time
}

func (User) TableName() string { return "users" }

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

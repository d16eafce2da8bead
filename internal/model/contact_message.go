package model

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage stores a message submitted through the public contact form.
type ContactMessage struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name    string    `gorm:"not null"`
	Email   string    `gorm:"not null"`
	Phone   string
	Subject string `gorm:"not null"`
	Message string `gorm:"type:text;not null"`

	CreatedAt time.Time
}

func (ContactMessage) TableName() string { return "contact_messages" }

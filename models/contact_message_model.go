package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageStatusNew      = "new"
	MessageStatusRead     = "read"
	MessageStatusReplied  = "replied"
	MessageStatusArchived = "archived"
)

// ContactMessage is a contact-form submission. Plain CRUD, no invariants
// beyond the soft per-email resubmission window checked at intake.
type ContactMessage struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name    string    `gorm:"size:100;not null" json:"name"`
	Email   string    `gorm:"size:255;not null;index" json:"email"`
	Subject string    `gorm:"size:200;not null" json:"subject"`
	Message string    `gorm:"type:text;not null" json:"message"`

	MessageType string `gorm:"size:50;not null;default:'general'" json:"message_type"`
	Priority    string `gorm:"size:20;not null;default:'normal'" json:"priority"`
	Status      string `gorm:"size:20;not null;default:'new'" json:"status"`
	IsSpam      bool   `gorm:"not null;default:false" json:"is_spam"`

	IPAddress *string `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent *string `gorm:"size:512" json:"user_agent,omitempty"`
	Source    string  `gorm:"size:50;not null;default:'website'" json:"source"`

	ReadAt    *time.Time `json:"read_at,omitempty"`
	RepliedAt *time.Time `json:"replied_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

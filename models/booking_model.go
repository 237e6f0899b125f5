package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
)

// Booking is one reserved meeting slot. The partial unique index on
// (date, time) is what actually guarantees that two non-cancelled bookings
// never share a slot; everything above the store only reads it.
type Booking struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	Phone       *string   `gorm:"size:20" json:"phone,omitempty"`
	Company     *string   `gorm:"size:100" json:"company,omitempty"`
	Message     *string   `gorm:"type:text" json:"message,omitempty"`
	MeetingType string    `gorm:"size:50;not null" json:"meeting_type"`

	Date     string `gorm:"size:10;not null;index:idx_bookings_slot,unique,where:status <> 'cancelled'" json:"date"`
	Time     string `gorm:"size:8;not null;index:idx_bookings_slot,unique" json:"time"`
	Timezone string `gorm:"size:20;not null;default:'UTC+05:30'" json:"timezone"`
	Status   string `gorm:"size:20;not null;default:'confirmed'" json:"status"`

	CalendarEventID  *string `gorm:"size:255" json:"calendar_event_id,omitempty"`
	MeetingLink      *string `gorm:"size:255" json:"meeting_link,omitempty"`
	CalendarEventURL *string `gorm:"size:512" json:"calendar_event_url,omitempty"`

	ReminderSent bool `gorm:"not null;default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

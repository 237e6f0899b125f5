package scheduling

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nileshk/portfolio_backend/models"
)

// BookingStore is the persistence contract the scheduling core depends on.
// Insert must enforce slot uniqueness atomically and report a violation as
// database.ErrSlotTaken.
type BookingStore interface {
	FindConflict(ctx context.Context, date, timeLabel string) (*models.Booking, error)
	Insert(ctx context.Context, b *models.Booking) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Booking, error)
	AttachCalendarLinkage(ctx context.Context, id uuid.UUID, eventID, meetLink, eventURL string) error
	FindByDate(ctx context.Context, date string) ([]models.Booking, error)
}

// CalendarService creates the external calendar event for a booking.
// Single attempt per booking, failures never abort the workflow.
type CalendarService interface {
	CreateEvent(ctx context.Context, req EventRequest) (*EventResult, error)
}

// EmailSender delivers the client confirmation plus the admin notification.
type EmailSender interface {
	SendBookingEmails(ctx context.Context, m BookingEmail) (*EmailResult, error)
}

type EventRequest struct {
	Date            string
	Time            string
	DurationMinutes int
	Timezone        string
	AttendeeEmail   string
	AttendeeName    string
	Summary         string
	Description     string
}

type EventResult struct {
	EventID  string
	EventURL string
	MeetLink string
}

type BookingEmail struct {
	To              string
	Name            string
	Date            string
	Time            string
	MeetingType     string
	MeetingLabel    string
	Timezone        string
	BookingID       string
	CalendarEventID string
	MeetLink        string
}

type EmailResult struct {
	ClientMessageID string
	AdminMessageID  string
}

// BookRequest is the normalized booking submission reaching the workflow.
type BookRequest struct {
	Name        string
	Email       string
	Phone       string
	Company     string
	Message     string
	MeetingType string
	Date        string
	Time        string
	Timezone    string
}

const (
	StatusSuccess  = "success"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

// ServiceStatus reports one collaborator's outcome for a booking.
type ServiceStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// BookingResult is the composite outcome of a confirmed booking: the
// persisted record plus the per-collaborator status map.
type BookingResult struct {
	Booking      *models.Booking          `json:"booking"`
	Services     map[string]ServiceStatus `json:"services"`
	ProcessingMs int64                    `json:"processing_time_ms"`
}

// ValidationError rejects a request before any side effect happens.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
	}
	return e.Message
}

// ConflictError means the requested slot is already held by another
// non-cancelled booking; it carries the winner for the 409 body.
type ConflictError struct {
	Conflicting *models.Booking
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slot %s %s is already booked", e.Conflicting.Date, e.Conflicting.Time)
}

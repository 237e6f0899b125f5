package scheduling

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nileshk/portfolio_backend/database"
	"github.com/nileshk/portfolio_backend/models"
)

const DefaultTimezone = "UTC+05:30"

const collaboratorTimeout = 10 * time.Second

// BookingWorkflow runs the booking state machine: validate, check conflict,
// persist, then best-effort calendar and email. Persisting is the commit
// point; nothing after it can revert a confirmed booking. Nil collaborators
// are reported as disabled.
type BookingWorkflow struct {
	store    BookingStore
	calendar CalendarService
	email    EmailSender
}

func NewBookingWorkflow(store BookingStore, calendar CalendarService, email EmailSender) *BookingWorkflow {
	return &BookingWorkflow{store: store, calendar: calendar, email: email}
}

// Submit processes one booking request end to end and reports the outcome
// of every collaborator. Returns *ValidationError or *ConflictError for
// client-attributable rejections; any other error means nothing was stored.
func (w *BookingWorkflow) Submit(ctx context.Context, req BookRequest) (*BookingResult, error) {
	started := time.Now()

	if err := w.validate(&req); err != nil {
		return nil, err
	}

	// Early exit so the common conflict case gets the friendlier response
	// without an insert attempt. Not authoritative: two requests can both
	// pass this check; the unique index settles the race below.
	if existing, err := w.store.FindConflict(ctx, req.Date, req.Time); err != nil {
		return nil, fmt.Errorf("conflict check failed: %w", err)
	} else if existing != nil {
		return nil, &ConflictError{Conflicting: existing}
	}

	booking := &models.Booking{
		Name:        req.Name,
		Email:       req.Email,
		MeetingType: req.MeetingType,
		Date:        req.Date,
		Time:        req.Time,
		Timezone:    req.Timezone,
		Status:      models.BookingStatusConfirmed,
	}
	if req.Phone != "" {
		booking.Phone = &req.Phone
	}
	if req.Company != "" {
		booking.Company = &req.Company
	}
	if req.Message != "" {
		booking.Message = &req.Message
	}

	if err := w.store.Insert(ctx, booking); err != nil {
		if errors.Is(err, database.ErrSlotTaken) {
			// Lost the race after the check passed. Refetch the winner so
			// the response matches a conflict caught early.
			winner, ferr := w.store.FindConflict(ctx, req.Date, req.Time)
			if ferr != nil || winner == nil {
				winner = &models.Booking{Date: req.Date, Time: req.Time}
			}
			return nil, &ConflictError{Conflicting: winner}
		}
		return nil, err
	}

	services := map[string]ServiceStatus{
		"database": {Status: StatusSuccess},
	}
	services["calendar"] = w.attemptCalendar(ctx, booking)
	services["email"] = w.attemptEmail(ctx, booking)

	return &BookingResult{
		Booking:      booking,
		Services:     services,
		ProcessingMs: time.Since(started).Milliseconds(),
	}, nil
}

// Cancel flips a booking to cancelled, freeing its (date, time) pair for
// both availability and future conflict checks.
func (w *BookingWorkflow) Cancel(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return w.store.UpdateStatus(ctx, id, models.BookingStatusCancelled)
}

func (w *BookingWorkflow) validate(req *BookRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Timezone == "" {
		req.Timezone = DefaultTimezone
	}

	var missing []string
	for _, f := range []struct{ name, val string }{
		{"name", req.Name},
		{"email", req.Email},
		{"date", req.Date},
		{"time", req.Time},
		{"meetingType", req.MeetingType},
	} {
		if f.val == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing, Message: "missing required fields"}
	}

	if !validEmail(req.Email) {
		return &ValidationError{Fields: []string{"email"}, Message: "invalid email address"}
	}
	if !validDate(req.Date) {
		return &ValidationError{Fields: []string{"date"}, Message: "date must be a valid YYYY-MM-DD calendar date"}
	}
	if !validTimeLabel(req.Time) {
		return &ValidationError{Fields: []string{"time"}, Message: "time must be in H:MM AM/PM form"}
	}
	return nil
}

func (w *BookingWorkflow) attemptCalendar(ctx context.Context, booking *models.Booking) ServiceStatus {
	if w.calendar == nil {
		return ServiceStatus{Status: StatusDisabled}
	}

	cctx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()

	event, err := w.calendar.CreateEvent(cctx, EventRequest{
		Date:            booking.Date,
		Time:            booking.Time,
		DurationMinutes: DurationFor(booking.MeetingType),
		Timezone:        booking.Timezone,
		AttendeeEmail:   booking.Email,
		AttendeeName:    booking.Name,
		Summary:         fmt.Sprintf("%s with %s", LabelFor(booking.MeetingType), booking.Name),
		Description:     derefOrEmpty(booking.Message),
	})
	if err != nil {
		log.Printf("🔥 Calendar event creation failed for booking %s: %v", booking.ID, err)
		return ServiceStatus{Status: StatusFailed, Error: err.Error()}
	}

	booking.CalendarEventID = &event.EventID
	if event.MeetLink != "" {
		booking.MeetingLink = &event.MeetLink
	}
	if event.EventURL != "" {
		booking.CalendarEventURL = &event.EventURL
	}
	if err := w.store.AttachCalendarLinkage(cctx, booking.ID, event.EventID, event.MeetLink, event.EventURL); err != nil {
		log.Printf("🔥 Failed to link calendar event %s to booking %s: %v", event.EventID, booking.ID, err)
		return ServiceStatus{Status: StatusFailed, Error: "event created but could not be linked to the booking"}
	}
	return ServiceStatus{Status: StatusSuccess}
}

func (w *BookingWorkflow) attemptEmail(ctx context.Context, booking *models.Booking) ServiceStatus {
	if w.email == nil {
		return ServiceStatus{Status: StatusDisabled}
	}

	ectx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()

	_, err := w.email.SendBookingEmails(ectx, BookingEmail{
		To:              booking.Email,
		Name:            booking.Name,
		Date:            booking.Date,
		Time:            booking.Time,
		MeetingType:     booking.MeetingType,
		MeetingLabel:    LabelFor(booking.MeetingType),
		Timezone:        booking.Timezone,
		BookingID:       booking.ID.String(),
		CalendarEventID: derefOrEmpty(booking.CalendarEventID),
		MeetLink:        derefOrEmpty(booking.MeetingLink),
	})
	if err != nil {
		log.Printf("🔥 Booking emails failed for %s: %v", booking.ID, err)
		return ServiceStatus{Status: StatusFailed, Error: err.Error()}
	}
	return ServiceStatus{Status: StatusSuccess}
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

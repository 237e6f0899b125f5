package scheduling

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/nileshk/portfolio_backend/database"
	"github.com/nileshk/portfolio_backend/models"
)

// fakeStore enforces slot uniqueness under a mutex the way the real store's
// partial unique index does: a second insert for a live (date, time) pair
// fails with database.ErrSlotTaken.
type fakeStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*models.Booking

	// blindConflictCheck makes FindConflict always report a free slot, so
	// tests can force the losing writer down the insert-race path.
	blindConflictCheck bool

	findErr   error
	insertErr error
	linkErr   error

	linked []uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{bookings: make(map[uuid.UUID]*models.Booking)}
}

func (f *fakeStore) lookup(date, timeLabel string) *models.Booking {
	for _, b := range f.bookings {
		if b.Date == date && b.Time == timeLabel && b.Status != models.BookingStatusCancelled {
			return b
		}
	}
	return nil
}

func (f *fakeStore) FindConflict(ctx context.Context, date, timeLabel string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.blindConflictCheck {
		return nil, nil
	}
	return f.lookup(date, timeLabel), nil
}

func (f *fakeStore) Insert(ctx context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.lookup(b.Date, b.Time) != nil {
		return database.ErrSlotTaken
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	stored := *b
	f.bookings[b.ID] = &stored
	return nil
}

func (f *fakeStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, database.ErrBookingNotFound
	}
	b.Status = status
	out := *b
	return &out, nil
}

func (f *fakeStore) AttachCalendarLinkage(ctx context.Context, id uuid.UUID, eventID, meetLink, eventURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.linkErr != nil {
		return f.linkErr
	}
	b, ok := f.bookings[id]
	if !ok {
		return database.ErrBookingNotFound
	}
	b.CalendarEventID = &eventID
	b.MeetingLink = &meetLink
	b.CalendarEventURL = &eventURL
	f.linked = append(f.linked, id)
	return nil
}

func (f *fakeStore) FindByDate(ctx context.Context, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Date == date && b.Status != models.BookingStatusCancelled {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bookings)
}

type fakeCalendar struct {
	err    error
	result EventResult
	got    []EventRequest
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, req EventRequest) (*EventResult, error) {
	f.got = append(f.got, req)
	if f.err != nil {
		return nil, f.err
	}
	out := f.result
	return &out, nil
}

type fakeEmail struct {
	err error
	got []BookingEmail
}

func (f *fakeEmail) SendBookingEmails(ctx context.Context, m BookingEmail) (*EmailResult, error) {
	f.got = append(f.got, m)
	if f.err != nil {
		return nil, f.err
	}
	return &EmailResult{ClientMessageID: "client-1", AdminMessageID: "admin-1"}, nil
}

var errBoom = errors.New("boom")

func validRequest() BookRequest {
	return BookRequest{
		Name:        "Ann",
		Email:       "ann@x.com",
		Date:        "2025-08-21",
		Time:        "10:00 AM",
		MeetingType: MeetingConsultation,
	}
}

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nileshk/portfolio_backend/database"
	"github.com/nileshk/portfolio_backend/handlers"
	"github.com/nileshk/portfolio_backend/models"
	"github.com/nileshk/portfolio_backend/routes"
	"github.com/nileshk/portfolio_backend/scheduling"
)

// memBookingStore backs handler tests with the same uniqueness semantics the
// partial unique index provides.
type memBookingStore struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*models.Booking
}

func newMemBookingStore() *memBookingStore {
	return &memBookingStore{bookings: make(map[uuid.UUID]*models.Booking)}
}

func (s *memBookingStore) lookup(date, timeLabel string) *models.Booking {
	for _, b := range s.bookings {
		if b.Date == date && b.Time == timeLabel && b.Status != models.BookingStatusCancelled {
			return b
		}
	}
	return nil
}

func (s *memBookingStore) FindConflict(ctx context.Context, date, timeLabel string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookup(date, timeLabel), nil
}

func (s *memBookingStore) Insert(ctx context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lookup(b.Date, b.Time) != nil {
		return database.ErrSlotTaken
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	stored := *b
	s.bookings[b.ID] = &stored
	return nil
}

func (s *memBookingStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, database.ErrBookingNotFound
	}
	b.Status = status
	out := *b
	return &out, nil
}

func (s *memBookingStore) AttachCalendarLinkage(ctx context.Context, id uuid.UUID, eventID, meetLink, eventURL string) error {
	return nil
}

func (s *memBookingStore) FindByDate(ctx context.Context, date string) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.Date == date && b.Status != models.BookingStatusCancelled {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (s *memBookingStore) List(ctx context.Context, page, size int, date, status string) ([]models.Booking, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if (date == "" || b.Date == date) && (status == "" || b.Status == status) {
			out = append(out, *b)
		}
	}
	return out, int64(len(out)), nil
}

func (s *memBookingStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.bookings)
}

// memContactStore is the contact CRUD equivalent.
type memContactStore struct {
	mu       sync.Mutex
	messages map[uuid.UUID]*models.ContactMessage
}

func newMemContactStore() *memContactStore {
	return &memContactStore{messages: make(map[uuid.UUID]*models.ContactMessage)}
}

func (s *memContactStore) Insert(ctx context.Context, m *models.ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	stored := *m
	s.messages[m.ID] = &stored
	return nil
}

func (s *memContactStore) LastFromEmailSince(ctx context.Context, email string, since time.Time) (*models.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var newest *models.ContactMessage
	for _, m := range s.messages {
		if m.Email == email && m.CreatedAt.After(since) {
			if newest == nil || m.CreatedAt.After(newest.CreatedAt) {
				newest = m
			}
		}
	}
	if newest == nil {
		return nil, nil
	}
	out := *newest
	return &out, nil
}

func (s *memContactStore) List(ctx context.Context, page, size int, status, messageType string) ([]models.ContactMessage, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ContactMessage
	for _, m := range s.messages {
		if (status == "" || m.Status == status) && (messageType == "" || m.MessageType == messageType) {
			out = append(out, *m)
		}
	}
	return out, int64(len(out)), nil
}

func (s *memContactStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.ContactMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return nil, database.ErrMessageNotFound
	}
	m.Status = status
	out := *m
	return &out, nil
}

func (s *memContactStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[id]; !ok {
		return database.ErrMessageNotFound
	}
	delete(s.messages, id)
	return nil
}

func (s *memContactStore) get(id uuid.UUID) *models.ContactMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.messages[id]; ok {
		out := *m
		return &out
	}
	return nil
}

func newBookingApp(store *memBookingStore) *fiber.App {
	workflow := scheduling.NewBookingWorkflow(store, nil, nil)
	availability := scheduling.NewAvailabilityResolver(store)
	h := handlers.NewBookingHandler(workflow, availability, store)

	app := fiber.New()
	routes.BookingRoutes(app, h)
	return app
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode body %s: %v", raw, err)
	}
}

func bookBody() map[string]any {
	return map[string]any{
		"name":        "Ann",
		"email":       "ann@x.com",
		"date":        "2025-08-21",
		"time":        "10:00 AM",
		"meetingType": "consultation",
	}
}

package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/nileshk/portfolio_backend/models"
)

var (
	ErrSlotTaken       = errors.New("slot already booked")
	ErrBookingNotFound = errors.New("booking not found")
)

const pgUniqueViolation = "23505"

type BookingStore struct{ db *gorm.DB }

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{db: db}
}

// FindConflict returns the non-cancelled booking occupying (date, time),
// or nil when the slot is free. This is only the early exit for a friendly
// 409; the partial unique index is what closes the race.
func (s *BookingStore) FindConflict(ctx context.Context, date, timeLabel string) (*models.Booking, error) {
	var b models.Booking
	err := s.db.WithContext(ctx).
		Where("date = ? AND time = ? AND status <> ?", date, timeLabel, models.BookingStatusCancelled).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Insert persists a new booking. A unique violation on the slot index is
// reported as ErrSlotTaken; the losing writer of a race lands here.
func (s *BookingStore) Insert(ctx context.Context, b *models.Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if err := s.db.WithContext(ctx).Create(b).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (s *BookingStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Booking, error) {
	var b models.Booking
	if err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	b.Status = status
	if err := s.db.WithContext(ctx).Save(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// AttachCalendarLinkage records the external calendar event on an already
// persisted booking. Never creates rows.
func (s *BookingStore) AttachCalendarLinkage(ctx context.Context, id uuid.UUID, eventID, meetLink, eventURL string) error {
	res := s.db.WithContext(ctx).Model(&models.Booking{}).Where("id = ?", id).Updates(map[string]interface{}{
		"calendar_event_id":  eventID,
		"meeting_link":       meetLink,
		"calendar_event_url": eventURL,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	return nil
}

func (s *BookingStore) FindByDate(ctx context.Context, date string) ([]models.Booking, error) {
	var out []models.Booking
	err := s.db.WithContext(ctx).
		Where("date = ? AND status <> ?", date, models.BookingStatusCancelled).
		Order("created_at ASC").
		Find(&out).Error
	return out, err
}

func (s *BookingStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	if err := s.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (s *BookingStore) List(ctx context.Context, page, size int, date, status string) ([]models.Booking, int64, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := s.db.WithContext(ctx).Model(&models.Booking{})
	if date != "" {
		qb = qb.Where("date = ?", date)
	}
	if status != "" {
		qb = qb.Where("status = ?", status)
	}
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Booking
	if err := qb.Order("created_at DESC").Limit(size).Offset(page * size).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// FindUnreminded returns confirmed bookings on the given dates that have not
// had a reminder email sent yet. Used by the cron reminder job.
func (s *BookingStore) FindUnreminded(ctx context.Context, dates []string) ([]models.Booking, error) {
	var out []models.Booking
	err := s.db.WithContext(ctx).
		Where("date IN ? AND status = ? AND reminder_sent = ?", dates, models.BookingStatusConfirmed, false).
		Find(&out).Error
	return out, err
}

func (s *BookingStore) MarkReminderSent(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", id).
		Update("reminder_sent", true).Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nileshk/portfolio_backend/models"
)

var ErrMessageNotFound = errors.New("contact message not found")

type ContactStore struct{ db *gorm.DB }

func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

func (s *ContactStore) Insert(ctx context.Context, m *models.ContactMessage) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(m).Error
}

// LastFromEmailSince returns the newest message from the address submitted
// after the cutoff, or nil. Backs the soft resubmission window.
func (s *ContactStore) LastFromEmailSince(ctx context.Context, email string, since time.Time) (*models.ContactMessage, error) {
	var m models.ContactMessage
	err := s.db.WithContext(ctx).
		Where("email = ? AND created_at > ?", email, since).
		Order("created_at DESC").
		First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ContactStore) List(ctx context.Context, page, size int, status, messageType string) ([]models.ContactMessage, int64, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := s.db.WithContext(ctx).Model(&models.ContactMessage{})
	if status != "" {
		qb = qb.Where("status = ?", status)
	}
	if messageType != "" {
		qb = qb.Where("message_type = ?", messageType)
	}
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.ContactMessage
	if err := qb.Order("created_at DESC").Limit(size).Offset(page * size).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// UpdateStatus moves a message through new → read → replied, stamping the
// matching audit timestamp.
func (s *ContactStore) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.ContactMessage, error) {
	var m models.ContactMessage
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	now := time.Now()
	m.Status = status
	switch status {
	case models.MessageStatusRead:
		if m.ReadAt == nil {
			m.ReadAt = &now
		}
	case models.MessageStatusReplied:
		if m.RepliedAt == nil {
			m.RepliedAt = &now
		}
	}

	if err := s.db.WithContext(ctx).Save(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *ContactStore) Delete(ctx context.Context, id uuid.UUID) error {
	res := s.db.WithContext(ctx).Delete(&models.ContactMessage{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

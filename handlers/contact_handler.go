package handlers

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nileshk/portfolio_backend/database"
	"github.com/nileshk/portfolio_backend/models"
)

const resubmissionWindow = 5 * time.Minute

var spamKeywords = []string{
	"viagra", "casino", "lottery", "crypto investment", "forex signals",
	"make money fast", "work from home", "click here", "free offer",
}

// ContactStore is the persistence slice the contact handler needs.
type ContactStore interface {
	Insert(ctx context.Context, m *models.ContactMessage) error
	LastFromEmailSince(ctx context.Context, email string, since time.Time) (*models.ContactMessage, error)
	List(ctx context.Context, page, size int, status, messageType string) ([]models.ContactMessage, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.ContactMessage, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// AdminNotifier is the best-effort email hook for new messages.
type AdminNotifier interface {
	SendContactNotification(ctx context.Context, name, email, subject, message string) error
}

type ContactHandler struct {
	store    ContactStore
	notifier AdminNotifier
}

func NewContactHandler(store ContactStore, notifier AdminNotifier) *ContactHandler {
	return &ContactHandler{store: store, notifier: notifier}
}

type ContactRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Subject     string `json:"subject" validate:"required,max=200"`
	Message     string `json:"message" validate:"required,max=2000"`
	MessageType string `json:"messageType" validate:"omitempty,max=50"`
}

// SubmitMessage stores a contact-form submission. The 5-minute per-email
// window is a soft courtesy limit, not a security boundary.
func (h *ContactHandler) SubmitMessage(c *fiber.Ctx) error {
	var req ContactRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	recent, err := h.store.LastFromEmailSince(c.Context(), email, time.Now().Add(-resubmissionWindow))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit message"})
	}
	if recent != nil {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "You recently sent a message. Please wait a few minutes before sending another.",
		})
	}

	msg := &models.ContactMessage{
		Name:        strings.TrimSpace(req.Name),
		Email:       email,
		Subject:     strings.TrimSpace(req.Subject),
		Message:     req.Message,
		MessageType: req.MessageType,
		Priority:    "normal",
		Status:      models.MessageStatusNew,
		Source:      "website",
	}
	if msg.MessageType == "" {
		msg.MessageType = "general"
	}
	if looksLikeSpam(msg.Subject + " " + msg.Message) {
		msg.IsSpam = true
		msg.Priority = "low"
	}
	if ip := c.IP(); ip != "" {
		msg.IPAddress = &ip
	}
	if ua := c.Get("User-Agent"); ua != "" {
		msg.UserAgent = &ua
	}

	if err := h.store.Insert(c.Context(), msg); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit message"})
	}

	if h.notifier != nil && !msg.IsSpam {
		go func(m models.ContactMessage) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := h.notifier.SendContactNotification(ctx, m.Name, m.Email, m.Subject, m.Message); err != nil {
				log.Printf("🔥 Admin notification failed for message %s: %v", m.ID, err)
			}
		}(*msg)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Thanks for reaching out! I will get back to you soon.",
		"id":      msg.ID,
	})
}

func (h *ContactHandler) ListMessages(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 20)
	status := c.Query("status")
	messageType := c.Query("messageType")

	messages, total, err := h.store.List(c.Context(), page, size, status, messageType)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list messages"})
	}

	return c.JSON(fiber.Map{
		"messages": messages,
		"total":    total,
		"page":     page,
		"size":     size,
	})
}

type UpdateMessageRequest struct {
	Status string `json:"status" validate:"required,oneof=new read replied archived"`
}

func (h *ContactHandler) UpdateMessageStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid message id"})
	}

	var req UpdateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	msg, err := h.store.UpdateStatus(c.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, database.ErrMessageNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update message"})
	}

	return c.JSON(msg)
}

func (h *ContactHandler) DeleteMessage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid message id"})
	}

	if err := h.store.Delete(c.Context(), id); err != nil {
		if errors.Is(err, database.ErrMessageNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Message not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete message"})
	}

	return c.JSON(fiber.Map{"message": "Message deleted successfully"})
}

func looksLikeSpam(text string) bool {
	lowered := strings.ToLower(text)
	for _, kw := range spamKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

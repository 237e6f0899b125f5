package handlers

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/nileshk/portfolio_backend/database"
	"github.com/nileshk/portfolio_backend/models"
	"github.com/nileshk/portfolio_backend/scheduling"
)

var validate = validator.New()

// BookingLister is the admin listing slice of the booking store.
type BookingLister interface {
	List(ctx context.Context, page, size int, date, status string) ([]models.Booking, int64, error)
}

type BookingHandler struct {
	workflow     *scheduling.BookingWorkflow
	availability *scheduling.AvailabilityResolver
	lister       BookingLister
}

func NewBookingHandler(workflow *scheduling.BookingWorkflow, availability *scheduling.AvailabilityResolver, lister BookingLister) *BookingHandler {
	return &BookingHandler{workflow: workflow, availability: availability, lister: lister}
}

type BookRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"omitempty,max=20"`
	Company     string `json:"company" validate:"omitempty,max=100"`
	Message     string `json:"message" validate:"omitempty,max=1000"`
	MeetingType string `json:"meetingType" validate:"required,max=50"`
	Date        string `json:"date" validate:"required"`
	Time        string `json:"time" validate:"required"`
	Timezone    string `json:"timezone" validate:"omitempty,max=20"`
}

// GetAvailability returns the taken time labels for a date as a flat array.
func (h *BookingHandler) GetAvailability(c *fiber.Ctx) error {
	date := c.Query("date")

	taken, err := h.availability.BookedSlots(c.Context(), date)
	if err != nil {
		var verr *scheduling.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": verr.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Availability check failed, please retry."})
	}

	if taken == nil {
		taken = []string{}
	}
	return c.JSON(taken)
}

// CreateBooking runs the booking workflow and maps its error taxonomy to
// status codes: validation 400, conflict 409, store failure 500.
func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	var req BookRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.workflow.Submit(c.Context(), scheduling.BookRequest{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Company:     req.Company,
		Message:     req.Message,
		MeetingType: req.MeetingType,
		Date:        req.Date,
		Time:        req.Time,
		Timezone:    req.Timezone,
	})
	if err != nil {
		var verr *scheduling.ValidationError
		if errors.As(err, &verr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   verr.Message,
				"fields":  verr.Fields,
			})
		}
		var cerr *scheduling.ConflictError
		if errors.As(err, &cerr) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"success": false,
				"error":   "This time slot has already been booked. Please choose another time.",
				"conflictingBooking": fiber.Map{
					"id":   cerr.Conflicting.ID,
					"date": cerr.Conflicting.Date,
					"time": cerr.Conflicting.Time,
				},
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Booking could not be processed, please try again.",
		})
	}

	b := result.Booking
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"booking": fiber.Map{
			"id":          b.ID,
			"name":        b.Name,
			"email":       b.Email,
			"date":        b.Date,
			"time":        b.Time,
			"meetingType": b.MeetingType,
			"timezone":    b.Timezone,
		},
		"services":         result.Services,
		"processingTimeMs": result.ProcessingMs,
	})
}

// CancelBooking sets status to cancelled, which frees the slot.
func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking id"})
	}

	booking, err := h.workflow.Cancel(c.Context(), id)
	if err != nil {
		if errors.Is(err, database.ErrBookingNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Booking not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to cancel booking"})
	}

	return c.JSON(fiber.Map{
		"message": "Booking cancelled successfully",
		"booking": booking,
	})
}

// ListBookings is the unauthenticated admin listing, filtered and paginated.
func (h *BookingHandler) ListBookings(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 20)
	date := c.Query("date")
	status := c.Query("status")

	bookings, total, err := h.lister.List(c.Context(), page, size, date, status)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to list bookings"})
	}

	return c.JSON(fiber.Map{
		"bookings": bookings,
		"total":    total,
		"page":     page,
		"size":     size,
	})
}

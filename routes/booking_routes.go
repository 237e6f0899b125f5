package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nileshk/portfolio_backend/handlers"
)

func BookingRoutes(app *fiber.App, h *handlers.BookingHandler) {
	app.Get("/availability", h.GetAvailability)
	app.Post("/book", h.CreateBooking)
	app.Delete("/booking/:id", h.CancelBooking)

	admin := app.Group("/admin")
	admin.Get("/bookings", h.ListBookings)
}

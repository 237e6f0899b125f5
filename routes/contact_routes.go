package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nileshk/portfolio_backend/handlers"
)

func ContactRoutes(app *fiber.App, h *handlers.ContactHandler) {
	app.Post("/contact", h.SubmitMessage)

	admin := app.Group("/admin")
	admin.Get("/messages", h.ListMessages)
	admin.Patch("/messages/:id", h.UpdateMessageStatus)
	admin.Delete("/messages/:id", h.DeleteMessage)
}

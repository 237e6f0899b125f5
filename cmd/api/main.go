package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"

	calendarpkg "github.com/nileshk/portfolio_backend/calendar"
	"github.com/nileshk/portfolio_backend/database"
	"github.com/nileshk/portfolio_backend/handlers"
	"github.com/nileshk/portfolio_backend/jobs"
	"github.com/nileshk/portfolio_backend/notifications"
	"github.com/nileshk/portfolio_backend/routes"
	"github.com/nileshk/portfolio_backend/scheduling"
)

func main() {
	db := database.ConnectDB()
	database.Migrate()

	bookingStore := database.NewBookingStore(db)
	contactStore := database.NewContactStore(db)

	emailSvc := notifications.NewEmailService()
	var emailSender scheduling.EmailSender
	if emailSvc != nil {
		emailSender = emailSvc
	}
	var calendarSvc scheduling.CalendarService
	if g := calendarpkg.NewGoogleService(); g != nil {
		calendarSvc = g
	}

	workflow := scheduling.NewBookingWorkflow(bookingStore, calendarSvc, emailSender)
	availability := scheduling.NewAvailabilityResolver(bookingStore)

	bookingHandler := handlers.NewBookingHandler(workflow, availability, bookingStore)
	var notifier handlers.AdminNotifier
	if emailSvc != nil {
		notifier = emailSvc
	}
	contactHandler := handlers.NewContactHandler(contactStore, notifier)

	reminderJob := jobs.NewReminderJob(bookingStore, emailSvc)
	c := cron.New()
	c.AddFunc("*/5 * * * *", reminderJob.SendMeetingReminders)
	go c.Start()
	log.Println("✅ Cron job for meeting reminders scheduled successfully.")

	app := fiber.New(fiber.Config{
		AppName:       "Portfolio API",
		CaseSensitive: true,
		StrictRouting: true,
		ReadTimeout:   15 * time.Second,
		WriteTimeout:  15 * time.Second,
		IdleTimeout:   60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept",
		AllowMethods:  "GET, POST, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to the Portfolio API",
		})
	})

	routes.BookingRoutes(app, bookingHandler)
	routes.ContactRoutes(app, contactHandler)

	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
		defer cancel()
		if err := database.Health(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "degraded",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	log.Println("✅ Server is running on port 8080")
	if err := app.Listen(":8080"); err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}

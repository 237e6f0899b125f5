package jobs

import (
	"context"
	"log"
	"time"

	calendarpkg "github.com/nileshk/portfolio_backend/calendar"
	"github.com/nileshk/portfolio_backend/database"
	"github.com/nileshk/portfolio_backend/notifications"
	"github.com/nileshk/portfolio_backend/scheduling"
)

// ReminderJob emails clients one hour before their confirmed meeting.
// Runs on a short cron cadence; each booking is reminded at most once.
type ReminderJob struct {
	store *database.BookingStore
	email *notifications.BrevoService
}

func NewReminderJob(store *database.BookingStore, email *notifications.BrevoService) *ReminderJob {
	return &ReminderJob{store: store, email: email}
}

func (j *ReminderJob) SendMeetingReminders() {
	if j.email == nil {
		return
	}
	log.Println("Running job: SendMeetingReminders...")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	now := time.Now()
	// Bookings store wall-clock dates; check today and tomorrow so offsets
	// around midnight are not missed.
	dates := []string{
		now.Format("2006-01-02"),
		now.Add(24 * time.Hour).Format("2006-01-02"),
	}

	upcoming, err := j.store.FindUnreminded(ctx, dates)
	if err != nil {
		log.Printf("Error checking for upcoming meetings: %v", err)
		return
	}

	for _, booking := range upcoming {
		start, err := calendarpkg.SlotStartTime(booking.Date, booking.Time, booking.Timezone)
		if err != nil {
			log.Printf("Skipping reminder for booking %s: %v", booking.ID, err)
			continue
		}

		until := start.Sub(now)
		if until <= 0 || until > time.Hour {
			continue
		}

		log.Printf("Sending reminder for booking ID: %s", booking.ID)
		err = j.email.SendReminder(ctx, scheduling.BookingEmail{
			To:           booking.Email,
			Name:         booking.Name,
			Date:         booking.Date,
			Time:         booking.Time,
			MeetingType:  booking.MeetingType,
			MeetingLabel: scheduling.LabelFor(booking.MeetingType),
			Timezone:     booking.Timezone,
			BookingID:    booking.ID.String(),
			MeetLink:     deref(booking.MeetingLink),
		})
		if err != nil {
			log.Printf("🔥 Reminder email failed for booking %s: %v", booking.ID, err)
			continue
		}

		if err := j.store.MarkReminderSent(ctx, booking.ID); err != nil {
			log.Printf("Failed to mark reminder sent for booking %s: %v", booking.ID, err)
		}
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

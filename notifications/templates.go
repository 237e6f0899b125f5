package notifications

import (
	"fmt"

	"github.com/nileshk/portfolio_backend/scheduling"
)

func clientConfirmationHTML(m scheduling.BookingEmail) string {
	meetRow := ""
	if m.MeetLink != "" {
		meetRow = fmt.Sprintf("<p><b>Meeting Link:</b> <a href='%s'>Join Meeting</a></p>", m.MeetLink)
	}
	return fmt.Sprintf(
		"<h1>Meeting Confirmed</h1>"+
			"<p>Hi %s,</p>"+
			"<p>Your <b>%s</b> is confirmed for <b>%s</b> at <b>%s</b> (%s).</p>"+
			"%s"+
			"<p>Booking reference: %s</p>"+
			"<p>Looking forward to speaking with you!</p>",
		m.Name, m.MeetingLabel, m.Date, m.Time, m.Timezone, meetRow, m.BookingID,
	)
}

func adminNotificationHTML(m scheduling.BookingEmail) string {
	return fmt.Sprintf(
		"<h1>New Booking</h1>"+
			"<p><b>%s</b> (%s) booked a <b>%s</b> on <b>%s</b> at <b>%s</b> (%s).</p>"+
			"<p>Booking: %s | Calendar event: %s</p>",
		m.Name, m.To, m.MeetingLabel, m.Date, m.Time, m.Timezone, m.BookingID, orDash(m.CalendarEventID),
	)
}

func reminderHTML(m scheduling.BookingEmail) string {
	meetRow := ""
	if m.MeetLink != "" {
		meetRow = fmt.Sprintf("<p><b>Meeting Link:</b> <a href='%s'>Join Meeting</a></p>", m.MeetLink)
	}
	return fmt.Sprintf(
		"<h1>Meeting Reminder</h1>"+
			"<p>Hi %s,</p>"+
			"<p>This is a friendly reminder that your %s starts in one hour, at %s (%s).</p>"+
			"%s",
		m.Name, m.MeetingLabel, m.Time, m.Timezone, meetRow,
	)
}

func contactNotificationHTML(name, email, subject, message string) string {
	return fmt.Sprintf(
		"<h1>New Contact Message</h1>"+
			"<p><b>From:</b> %s (%s)</p>"+
			"<p><b>Subject:</b> %s</p>"+
			"<p>%s</p>",
		name, email, subject, message,
	)
}

func orDash(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

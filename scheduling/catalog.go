package scheduling

// The slot catalog is the fixed menu of bookable times per day plus the
// meeting-type mappings. Pure data, shared by the availability resolver,
// the booking workflow and the calendar collaborator.

const (
	MeetingConsultation      = "consultation"
	MeetingProjectDiscussion = "project-discussion"
	MeetingTechnicalReview   = "technical-review"
	MeetingFollowUp          = "follow-up"
)

const DefaultDurationMinutes = 30

var timeSlots = []string{
	"9:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"2:00 PM",
	"3:00 PM",
	"4:00 PM",
	"5:00 PM",
	"6:00 PM",
}

var meetingDurations = map[string]int{
	MeetingConsultation:      30,
	MeetingProjectDiscussion: 60,
	MeetingTechnicalReview:   45,
	MeetingFollowUp:          15,
}

var meetingLabels = map[string]string{
	MeetingConsultation:      "Free Consultation",
	MeetingProjectDiscussion: "Project Discussion",
	MeetingTechnicalReview:   "Technical Review",
	MeetingFollowUp:          "Follow-up Meeting",
}

// Slots returns the daily time labels in display order.
func Slots() []string {
	out := make([]string, len(timeSlots))
	copy(out, timeSlots)
	return out
}

// DurationFor maps a meeting type to its length in minutes. An unrecognized
// type gets the default duration rather than failing the booking.
func DurationFor(meetingType string) int {
	if d, ok := meetingDurations[meetingType]; ok {
		return d
	}
	return DefaultDurationMinutes
}

func LabelFor(meetingType string) string {
	if l, ok := meetingLabels[meetingType]; ok {
		return l
	}
	return "Meeting"
}

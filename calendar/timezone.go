package calendar

import (
	"fmt"
	"time"
)

// Recognized timezone labels and their UTC offsets in minutes. Labels are
// opaque strings on the booking; conversion to an absolute instant happens
// only here. Unrecognized labels fall back to the default offset instead of
// erroring out.
var timezoneOffsets = map[string]int{
	"UTC+05:30": 330,
	"UTC":       0,
	"UTC+00:00": 0,
	"UTC+01:00": 60,
	"UTC+02:00": 120,
	"UTC+04:00": 240,
	"UTC+08:00": 480,
	"UTC-05:00": -300,
	"UTC-08:00": -480,
}

const defaultOffsetMinutes = 330 // UTC+05:30

// LocationFor resolves a timezone label to a fixed-offset Location.
func LocationFor(label string) *time.Location {
	offset, ok := timezoneOffsets[label]
	if !ok {
		offset = defaultOffsetMinutes
	}
	return time.FixedZone(label, offset*60)
}

// SlotStartTime combines a YYYY-MM-DD date and an H:MM AM/PM label into the
// slot's absolute start instant. Also used by the reminder job.
func SlotStartTime(date, timeLabel, tz string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 3:04 PM", date+" "+timeLabel, LocationFor(tz))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid slot time %q %q: %w", date, timeLabel, err)
	}
	return t, nil
}

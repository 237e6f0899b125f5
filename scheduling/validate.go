package scheduling

import (
	"regexp"
	"time"
)

var (
	dateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe  = regexp.MustCompile(`^(1[0-2]|[1-9]):[0-5][0-9] (AM|PM)$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// validDate requires YYYY-MM-DD and a real calendar date; the regexp alone
// would accept 2025-02-30.
func validDate(s string) bool {
	if !dateRe.MatchString(s) {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func validTimeLabel(s string) bool {
	return timeRe.MatchString(s)
}

func validEmail(s string) bool {
	return emailRe.MatchString(s)
}

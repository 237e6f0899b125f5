package scheduling

import (
	"context"
	"fmt"
)

// AvailabilityResolver answers "which slots are taken on this date".
// Read-only and advisory: the authoritative conflict check happens again
// inside the booking workflow, because a slot can be taken between the UI
// fetching availability and the user submitting.
type AvailabilityResolver struct {
	store BookingStore
}

func NewAvailabilityResolver(store BookingStore) *AvailabilityResolver {
	return &AvailabilityResolver{store: store}
}

// BookedSlots returns the time labels of non-cancelled bookings on date,
// ordered by the slot catalog so repeated reads render identically.
func (r *AvailabilityResolver) BookedSlots(ctx context.Context, date string) ([]string, error) {
	if !validDate(date) {
		return nil, &ValidationError{Fields: []string{"date"}, Message: "date must be a valid YYYY-MM-DD calendar date"}
	}

	bookings, err := r.store.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("availability check failed: %w", err)
	}

	taken := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		taken[b.Time] = true
	}

	out := make([]string, 0, len(taken))
	for _, slot := range timeSlots {
		if taken[slot] {
			out = append(out, slot)
			delete(taken, slot)
		}
	}
	// Labels outside the catalog should not exist, but keep them visible
	// in insertion order if they do.
	if len(taken) > 0 {
		for _, b := range bookings {
			if taken[b.Time] {
				out = append(out, b.Time)
				delete(taken, b.Time)
			}
		}
	}
	return out, nil
}

package scheduling

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestAvailabilityResolver_BookedSlots(t *testing.T) {
	t.Run("rejects malformed dates", func(t *testing.T) {
		r := NewAvailabilityResolver(newFakeStore())

		for _, date := range []string{"", "21-08-2025", "2025/08/21", "2025-13-01", "2025-02-30", "not-a-date"} {
			_, err := r.BookedSlots(context.Background(), date)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("date %q: expected ValidationError, got %v", date, err)
			}
		}
	})

	t.Run("empty day has no taken slots", func(t *testing.T) {
		r := NewAvailabilityResolver(newFakeStore())

		taken, err := r.BookedSlots(context.Background(), "2025-08-21")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(taken) != 0 {
			t.Errorf("taken = %v, want empty", taken)
		}
	})

	t.Run("projects taken labels in catalog order", func(t *testing.T) {
		store := newFakeStore()
		w := NewBookingWorkflow(store, nil, nil)
		for _, slot := range []string{"5:00 PM", "9:00 AM", "11:00 AM"} {
			req := validRequest()
			req.Time = slot
			if _, err := w.Submit(context.Background(), req); err != nil {
				t.Fatalf("seed booking at %s failed: %v", slot, err)
			}
		}

		r := NewAvailabilityResolver(store)
		taken, err := r.BookedSlots(context.Background(), "2025-08-21")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []string{"9:00 AM", "11:00 AM", "5:00 PM"}
		if !reflect.DeepEqual(taken, want) {
			t.Errorf("taken = %v, want %v", taken, want)
		}
	})

	t.Run("repeated reads are identical without writes", func(t *testing.T) {
		store := newFakeStore()
		w := NewBookingWorkflow(store, nil, nil)
		if _, err := w.Submit(context.Background(), validRequest()); err != nil {
			t.Fatalf("seed booking failed: %v", err)
		}

		r := NewAvailabilityResolver(store)
		first, err := r.BookedSlots(context.Background(), "2025-08-21")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for i := 0; i < 5; i++ {
			again, err := r.BookedSlots(context.Background(), "2025-08-21")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(first, again) {
				t.Fatalf("read %d differs: %v vs %v", i, again, first)
			}
		}
	})

	t.Run("cancelled bookings free their slot", func(t *testing.T) {
		store := newFakeStore()
		w := NewBookingWorkflow(store, nil, nil)
		result, err := w.Submit(context.Background(), validRequest())
		if err != nil {
			t.Fatalf("seed booking failed: %v", err)
		}

		r := NewAvailabilityResolver(store)
		taken, _ := r.BookedSlots(context.Background(), "2025-08-21")
		if len(taken) != 1 || taken[0] != "10:00 AM" {
			t.Fatalf("taken = %v, want [10:00 AM]", taken)
		}

		if _, err := w.Cancel(context.Background(), result.Booking.ID); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}

		taken, _ = r.BookedSlots(context.Background(), "2025-08-21")
		if len(taken) != 0 {
			t.Errorf("taken = %v after cancel, want empty", taken)
		}
	})

	t.Run("store failure surfaces as a transient error", func(t *testing.T) {
		store := newFakeStore()
		store.findErr = errBoom
		r := NewAvailabilityResolver(store)

		_, err := r.BookedSlots(context.Background(), "2025-08-21")
		if err == nil {
			t.Fatal("expected error when the store is unavailable")
		}
		var verr *ValidationError
		if errors.As(err, &verr) {
			t.Fatal("store failure must not look like a validation error")
		}
	})
}

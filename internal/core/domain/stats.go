package domain

import "time"

// SlotStats aggregates a slot snapshot. Recomputed wholesale on every
// snapshot replacement, never updated incrementally.
type SlotStats struct {
	Total       int
	Available   int
	Occupied    int
	Unavailable int
}

// ComputeSlotStats derives slot counts from the latest snapshot.
func ComputeSlotStats(slots []ParkingSlot) SlotStats {
	st := SlotStats{Total: len(slots)}
	for _, s := range slots {
		switch {
		case s.Free():
			st.Available++
		case s.Occupied:
			st.Occupied++
		}
		if !s.Available {
			st.Unavailable++
		}
	}
	return st
}

// BookingStats aggregates a booking snapshot. TotalFees counts settled
// amounts for completed bookings and the fee preview for active ones.
type BookingStats struct {
	Total     int
	Active    int
	Completed int
	TotalFees float64
}

// ComputeBookingStats derives booking counts and fees from the latest
// snapshot as of now.
func ComputeBookingStats(bookings []Booking, now time.Time) BookingStats {
	st := BookingStats{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case BookingActive:
			st.Active++
			st.TotalFees += b.FeePreview(now)
		case BookingCompleted:
			st.Completed++
			st.TotalFees += b.TotalAmount
		}
	}
	return st
}

// SlotFilter selects a subset of a slot snapshot for display.
type SlotFilter string

const (
	FilterAll         SlotFilter = "ALL"
	FilterAvailable   SlotFilter = "AVAILABLE"
	FilterOccupied    SlotFilter = "OCCUPIED"
	FilterUnavailable SlotFilter = "UNAVAILABLE"
)

// FilterSlots returns the slots matching the filter, preserving snapshot
// order. An unknown filter behaves like FilterAll.
func FilterSlots(slots []ParkingSlot, filter SlotFilter) []ParkingSlot {
	if filter == FilterAll || filter == "" {
		return slots
	}
	out := make([]ParkingSlot, 0, len(slots))
	for _, s := range slots {
		switch filter {
		case FilterAvailable:
			if s.Free() {
				out = append(out, s)
			}
		case FilterOccupied:
			if s.Occupied {
				out = append(out, s)
			}
		case FilterUnavailable:
			if !s.Available {
				out = append(out, s)
			}
		default:
			out = append(out, s)
		}
	}
	return out
}

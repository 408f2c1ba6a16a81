package domain

import (
	"testing"
	"time"
)

func slotFixture() []ParkingSlot {
	return []ParkingSlot{
		{ID: 1, SlotNumber: "A1", SlotType: SlotSmall, Available: true},
		{ID: 2, SlotNumber: "A2", SlotType: SlotMedium, Available: true, Occupied: true},
		{ID: 3, SlotNumber: "B1", SlotType: SlotLarge, Available: false},
		{ID: 4, SlotNumber: "B2", SlotType: SlotMedium, Available: true},
	}
}

func TestComputeSlotStats(t *testing.T) {
	st := ComputeSlotStats(slotFixture())
	if st.Total != 4 || st.Available != 2 || st.Occupied != 1 || st.Unavailable != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestComputeSlotStats_EmptySnapshotZeroesCounts(t *testing.T) {
	// A poll returning an empty sequence after a non-empty one must drop all
	// counts to zero and empty every filtered view.
	st := ComputeSlotStats(nil)
	if st.Total != 0 || st.Available != 0 || st.Occupied != 0 || st.Unavailable != 0 {
		t.Fatalf("unexpected stats for empty snapshot: %+v", st)
	}
	if got := FilterSlots(nil, FilterOccupied); len(got) != 0 {
		t.Fatalf("occupied filter not cleared: %v", got)
	}
}

func TestFilterSlots(t *testing.T) {
	slots := slotFixture()

	occupied := FilterSlots(slots, FilterOccupied)
	if len(occupied) != 1 || occupied[0].ID != 2 {
		t.Fatalf("unexpected occupied filter result: %v", occupied)
	}

	available := FilterSlots(slots, FilterAvailable)
	if len(available) != 2 || available[0].ID != 1 || available[1].ID != 4 {
		t.Fatalf("available filter must preserve snapshot order: %v", available)
	}

	if got := FilterSlots(slots, FilterAll); len(got) != len(slots) {
		t.Fatalf("ALL filter must return everything")
	}
}

func TestBookingFeePreview_CeilingHours(t *testing.T) {
	entry := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	b := Booking{Status: BookingActive, HourlyRate: 50, EntryTime: entry}

	// 1h30m parked rounds up to 2 hours.
	now := entry.Add(90 * time.Minute)
	if got := b.FeePreview(now); got != 100 {
		t.Fatalf("FeePreview = %v, want 100", got)
	}

	// Exactly one hour stays one hour.
	if got := b.FeePreview(entry.Add(time.Hour)); got != 50 {
		t.Fatalf("FeePreview = %v, want 50", got)
	}
}

func TestBookingElapsed_CompletedUsesExitTime(t *testing.T) {
	entry := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(2 * time.Hour)
	b := Booking{Status: BookingCompleted, EntryTime: entry, ExitTime: &exit}

	if got := b.Elapsed(exit.Add(5 * time.Hour)); got != 2*time.Hour {
		t.Fatalf("Elapsed = %v, want 2h", got)
	}
}

func TestComputeBookingStats(t *testing.T) {
	entry := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	exit := entry.Add(time.Hour)
	now := entry.Add(30 * time.Minute)

	bookings := []Booking{
		{Status: BookingActive, HourlyRate: 20, EntryTime: entry},
		{Status: BookingCompleted, TotalAmount: 60, EntryTime: entry, ExitTime: &exit},
		{Status: BookingCancelled},
	}

	st := ComputeBookingStats(bookings, now)
	if st.Total != 3 || st.Active != 1 || st.Completed != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}
	// 30 minutes active rounds up to one hour at rate 20, plus 60 settled.
	if st.TotalFees != 80 {
		t.Fatalf("TotalFees = %v, want 80", st.TotalFees)
	}
}

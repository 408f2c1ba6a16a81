package console

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/parkease/parking-console/internal/core/domain"
)

// RenderSlots prints the slot grid with its aggregate header. The filter is
// applied for display only; stats always describe the full snapshot.
func RenderSlots(w io.Writer, slots []domain.ParkingSlot, filter domain.SlotFilter) {
	stats := domain.ComputeSlotStats(slots)
	fmt.Fprintf(w, "Slots: %d total, %d available, %d occupied, %d unavailable\n\n",
		stats.Total, stats.Available, stats.Occupied, stats.Unavailable)

	filtered := domain.FilterSlots(slots, filter)
	if len(filtered) == 0 {
		fmt.Fprintln(w, "No slots found for selected filter")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSLOT\tFLOOR\tTYPE\tSTATUS\tVEHICLE")
	for _, s := range filtered {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\n",
			s.ID, s.SlotNumber, s.FloorNumber, s.SlotType, slotStatus(s), slotVehicle(s))
	}
	tw.Flush()
}

func slotStatus(s domain.ParkingSlot) string {
	switch {
	case !s.Available:
		return "UNAVAILABLE"
	case s.Occupied:
		return "OCCUPIED"
	default:
		return "AVAILABLE"
	}
}

func slotVehicle(s domain.ParkingSlot) string {
	if s.Booking == nil {
		return "-"
	}
	return s.Booking.Vehicle.LicensePlate
}

// RenderBookings prints a booking list with live elapsed durations and fee
// previews computed against now.
func RenderBookings(w io.Writer, bookings []domain.Booking, now time.Time) {
	stats := domain.ComputeBookingStats(bookings, now)
	fmt.Fprintf(w, "Bookings: %d total, %d active, %d completed, fees %.2f\n\n",
		stats.Total, stats.Active, stats.Completed, stats.TotalFees)

	if len(bookings) == 0 {
		fmt.Fprintln(w, "No bookings yet")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BOOKING\tPLATE\tTYPE\tSLOT\tSTATUS\tPAYMENT\tELAPSED\tAMOUNT")
	for _, b := range bookings {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%.2f\n",
			b.BookingNumber,
			b.Vehicle.LicensePlate,
			b.Vehicle.VehicleType,
			bookingSlot(b),
			b.Status,
			b.PaymentStatus,
			formatElapsed(b.Elapsed(now)),
			bookingAmount(b, now))
	}
	tw.Flush()
}

func bookingSlot(b domain.Booking) string {
	if b.Slot == nil {
		return "-"
	}
	return b.Slot.SlotNumber
}

// bookingAmount shows the settled amount for finished bookings and the
// running fee preview for active ones.
func bookingAmount(b domain.Booking, now time.Time) float64 {
	if b.Active() {
		return b.FeePreview(now)
	}
	return b.TotalAmount
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// RenderUsers prints the registered accounts table.
func RenderUsers(w io.Writer, users []domain.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users registered")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSERNAME\tNAME\tEMAIL\tPHONE\tROLE")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.Username, u.FullName, u.Email, u.PhoneNumber, u.Role)
	}
	tw.Flush()
}

// RenderReport prints the admin dashboard aggregate.
func RenderReport(w io.Writer, r domain.UsageReport) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Total bookings\t", r.TotalBookings)
	fmt.Fprintln(tw, "Active vehicles\t", r.ActiveBookings)
	fmt.Fprintf(tw, "Total revenue\t %.2f\n", r.TotalRevenue)
	fmt.Fprintln(tw, "Parking slots\t", r.TotalSlots)
	tw.Flush()
}

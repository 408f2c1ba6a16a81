package domain

import (
	"math"
	"time"
)

// SlotType classifies the physical size of a parking slot.
type SlotType string

const (
	SlotSmall  SlotType = "SMALL"
	SlotMedium SlotType = "MEDIUM"
	SlotLarge  SlotType = "LARGE"
)

// VehicleType determines the hourly parking rate.
type VehicleType string

const (
	VehicleBike  VehicleType = "BIKE"
	VehicleCar   VehicleType = "CAR"
	VehicleSUV   VehicleType = "SUV"
	VehicleTruck VehicleType = "TRUCK"
)

var hourlyRates = map[VehicleType]float64{
	VehicleBike:  10,
	VehicleCar:   20,
	VehicleSUV:   30,
	VehicleTruck: 50,
}

// HourlyRate returns the rate for the vehicle type, 0 for unknown types.
func (v VehicleType) HourlyRate() float64 {
	return hourlyRates[v]
}

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingActive    BookingStatus = "ACTIVE"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// PaymentStatus represents the settlement state of a booking.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Vehicle identifies the parked vehicle and its owner.
type Vehicle struct {
	LicensePlate string      `json:"licensePlate"`
	VehicleType  VehicleType `json:"vehicleType"`
	OwnerName    string      `json:"ownerName,omitempty"`
	PhoneNumber  string      `json:"phoneNumber,omitempty"`
}

// ParkingSlot mirrors the backend slot record. Occupied and Available are
// independent flags: a slot may be unoccupied yet administratively disabled.
type ParkingSlot struct {
	ID          int64    `json:"id"`
	SlotNumber  string   `json:"slotNumber"`
	FloorNumber int      `json:"floorNumber"`
	SlotType    SlotType `json:"slotType"`
	Occupied    bool     `json:"isOccupied"`
	Available   bool     `json:"isAvailable"`
	Booking     *Booking `json:"currentBooking,omitempty"`
}

// Free reports whether the slot can take a new vehicle.
func (s ParkingSlot) Free() bool {
	return s.Available && !s.Occupied
}

// Booking mirrors the backend booking record.
type Booking struct {
	ID            int64         `json:"id"`
	BookingNumber string        `json:"bookingNumber"`
	Vehicle       Vehicle       `json:"vehicle"`
	Slot          *ParkingSlot  `json:"parkingSlot,omitempty"`
	Status        BookingStatus `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	HourlyRate    float64       `json:"hourlyRate"`
	TotalAmount   float64       `json:"totalAmount"`
	EntryTime     time.Time     `json:"entryTime"`
	ExitTime      *time.Time    `json:"exitTime,omitempty"`
}

// Active reports whether the vehicle is still parked.
func (b Booking) Active() bool {
	return b.Status == BookingActive
}

// Elapsed returns how long the vehicle has been parked as of now. Completed
// bookings report the fixed entry-to-exit duration instead.
func (b Booking) Elapsed(now time.Time) time.Duration {
	if b.EntryTime.IsZero() {
		return 0
	}
	end := now
	if b.ExitTime != nil {
		end = *b.ExitTime
	}
	if end.Before(b.EntryTime) {
		return 0
	}
	return end.Sub(b.EntryTime)
}

// FeePreview estimates the amount due as of now: elapsed hours rounded up,
// times the hourly rate. The backend-computed TotalAmount is authoritative
// once the booking completes.
func (b Booking) FeePreview(now time.Time) float64 {
	elapsed := b.Elapsed(now)
	if elapsed <= 0 || b.HourlyRate <= 0 {
		return 0
	}
	return math.Ceil(elapsed.Hours()) * b.HourlyRate
}

// UsageReport is the admin dashboard aggregate served by the backend.
type UsageReport struct {
	TotalBookings  int     `json:"totalBookings"`
	ActiveBookings int     `json:"activeBookings"`
	TotalRevenue   float64 `json:"totalRevenue"`
	TotalSlots     int     `json:"totalSlots"`
}

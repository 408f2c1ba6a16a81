package ports

import (
	"context"
	"time"

	"github.com/parkease/parking-console/internal/core/domain"
)

// Credentials carries a login attempt.
type Credentials struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Registration carries all data needed to create an account. Validated
// client-side before any dispatch.
type Registration struct {
	FullName    string `json:"fullName" validate:"required"`
	Username    string `json:"username" validate:"required,min=3"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"required,len=10,numeric"`
	Password    string `json:"password" validate:"required,min=6"`
}

// AuthResult is the backend's answer to a successful login or registration.
type AuthResult struct {
	User  domain.User
	Token string
}

// AuthAPI is the authentication surface consumed from the backend.
type AuthAPI interface {
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)
	Register(ctx context.Context, reg Registration) (*AuthResult, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// SlotInput carries slot creation and update parameters.
type SlotInput struct {
	SlotNumber  string          `json:"slotNumber" validate:"required"`
	FloorNumber int             `json:"floorNumber" validate:"gte=0"`
	SlotType    domain.SlotType `json:"slotType" validate:"required,oneof=SMALL MEDIUM LARGE"`
}

// ParkInput carries a park-vehicle request. Validated client-side before
// any dispatch.
type ParkInput struct {
	LicensePlate string             `json:"licensePlate" validate:"required,uppercase"`
	VehicleType  domain.VehicleType `json:"vehicleType" validate:"required,oneof=BIKE CAR SUV TRUCK"`
	OwnerName    string             `json:"ownerName" validate:"required"`
	PhoneNumber  string             `json:"phoneNumber" validate:"required,len=10,numeric"`
}

// ParkingAPI is the parking surface consumed from the backend. Slot and
// booking reads return the backend's ordering untouched; the pollers replace
// their snapshots wholesale with these results.
type ParkingAPI interface {
	ListSlots(ctx context.Context) ([]domain.ParkingSlot, error)
	CreateSlot(ctx context.Context, input SlotInput) (*domain.ParkingSlot, error)
	UpdateSlot(ctx context.Context, id int64, input SlotInput) (*domain.ParkingSlot, error)
	DeleteSlot(ctx context.Context, id int64) error

	ListBookings(ctx context.Context) ([]domain.Booking, error)
	UserBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	Park(ctx context.Context, input ParkInput) (*domain.Booking, error)
	Checkout(ctx context.Context, bookingID int64) (*domain.Booking, error)

	SearchVehicle(ctx context.Context, licensePlate string) (*domain.Booking, error)
	RemoveVehicle(ctx context.Context, licensePlate string) error
}

// AdminAPI is the reporting surface consumed from the backend.
type AdminAPI interface {
	UsageReport(ctx context.Context, from, to time.Time) (*domain.UsageReport, error)
}

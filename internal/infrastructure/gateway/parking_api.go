package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/parkease/parking-console/internal/core/domain"
	"github.com/parkease/parking-console/internal/core/ports"
)

const parkingBase = "/api/parking"

// ParkingAPI implements ports.ParkingAPI over the gateway.
type ParkingAPI struct {
	gw *Gateway
}

func NewParkingAPI(gw *Gateway) *ParkingAPI {
	return &ParkingAPI{gw: gw}
}

// bookingEnvelope wraps mutation responses carrying one booking.
type bookingEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
}

func (p *ParkingAPI) ListSlots(ctx context.Context) ([]domain.ParkingSlot, error) {
	var slots []domain.ParkingSlot
	if err := p.gw.get(ctx, parkingBase+"/slots", &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

func (p *ParkingAPI) CreateSlot(ctx context.Context, input ports.SlotInput) (*domain.ParkingSlot, error) {
	var slot domain.ParkingSlot
	if err := p.gw.post(ctx, parkingBase+"/slots", input, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (p *ParkingAPI) UpdateSlot(ctx context.Context, id int64, input ports.SlotInput) (*domain.ParkingSlot, error) {
	var slot domain.ParkingSlot
	if err := p.gw.put(ctx, fmt.Sprintf("%s/slots/%d", parkingBase, id), input, &slot); err != nil {
		return nil, err
	}
	return &slot, nil
}

func (p *ParkingAPI) DeleteSlot(ctx context.Context, id int64) error {
	return p.gw.delete(ctx, fmt.Sprintf("%s/slots/%d", parkingBase, id))
}

func (p *ParkingAPI) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := p.gw.get(ctx, parkingBase+"/bookings", &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (p *ParkingAPI) UserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := p.gw.get(ctx, fmt.Sprintf("%s/user/%d/bookings", parkingBase, userID), &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (p *ParkingAPI) Park(ctx context.Context, input ports.ParkInput) (*domain.Booking, error) {
	var env bookingEnvelope
	if err := p.gw.post(ctx, parkingBase+"/park", input, &env); err != nil {
		return nil, err
	}
	if env.Booking == nil {
		return nil, domain.NewStatusError(http.StatusBadRequest, env.Message)
	}
	return env.Booking, nil
}

func (p *ParkingAPI) Checkout(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	var env bookingEnvelope
	if err := p.gw.post(ctx, fmt.Sprintf("%s/checkout/%d", parkingBase, bookingID), nil, &env); err != nil {
		return nil, err
	}
	if env.Booking == nil {
		return nil, domain.NewStatusError(http.StatusBadRequest, env.Message)
	}
	return env.Booking, nil
}

func (p *ParkingAPI) SearchVehicle(ctx context.Context, licensePlate string) (*domain.Booking, error) {
	var env bookingEnvelope
	path := parkingBase + "/search/" + url.PathEscape(licensePlate)
	if err := p.gw.get(ctx, path, &env); err != nil {
		return nil, err
	}
	if env.Booking == nil {
		return nil, domain.ErrNotFound
	}
	return env.Booking, nil
}

func (p *ParkingAPI) RemoveVehicle(ctx context.Context, licensePlate string) error {
	return p.gw.delete(ctx, parkingBase+"/remove/"+url.PathEscape(licensePlate))
}

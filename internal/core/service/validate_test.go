package service

import (
	"strings"
	"testing"

	"github.com/parkease/parking-console/internal/core/domain"
	"github.com/parkease/parking-console/internal/core/ports"
)

func TestCheckInput_Registration(t *testing.T) {
	err := CheckInput(ports.Registration{
		FullName:    "",
		Username:    "ab",
		Email:       "nope",
		PhoneNumber: "123",
		Password:    "12345",
	})
	if !IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	msg := err.Error()
	for _, want := range []string{
		"fullname is required",
		"username must be at least 3 characters",
		"email must be a valid email",
		"phonenumber must be exactly 10 characters",
		"password must be at least 6 characters",
	} {
		if !strings.Contains(msg, want) {
			t.Fatalf("message %q missing %q", msg, want)
		}
	}
}

func TestCheckInput_ParkInput(t *testing.T) {
	err := CheckInput(ports.ParkInput{
		LicensePlate: "ka01ab1234",
		VehicleType:  "PLANE",
		OwnerName:    "Dave",
		PhoneNumber:  "9876543210",
	})
	if !IsValidationError(err) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	msg := err.Error()
	if !strings.Contains(msg, "licenseplate must be upper case") {
		t.Fatalf("message %q missing plate casing failure", msg)
	}
	if !strings.Contains(msg, "vehicletype must be one of") {
		t.Fatalf("message %q missing vehicle type failure", msg)
	}
}

func TestCheckInput_Valid(t *testing.T) {
	if err := CheckInput(ports.ParkInput{
		LicensePlate: "KA01AB1234",
		VehicleType:  domain.VehicleCar,
		OwnerName:    "Dave",
		PhoneNumber:  "9876543210",
	}); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
}

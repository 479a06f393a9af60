package testdrive

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"showroom/internal/core"
)

var (
	ErrMissingVehicle  = errors.New("vehicle is required")
	ErrMissingLicense  = errors.New("driver's license number is required")
	ErrInvalidDate     = errors.New("date must be YYYY-MM-DD")
	ErrDateInPast      = errors.New("date is in the past")
	ErrSlotUnavailable = errors.New("time slot is not available on that date")
)

// BookingRequest is what the booking form submits.
type BookingRequest struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	LicenseNumber string `json:"licenseNumber"`
	Message       string `json:"message"`
	VehicleID     int    `json:"vehicleId"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// Validate checks the form fields and the chosen slot against the schedule.
// Dates before today (in the clock's location) are rejected.
func (r BookingRequest) Validate(s Schedule, now time.Time) (time.Time, error) {
	if strings.TrimSpace(r.FirstName) == "" {
		return time.Time{}, core.ErrEmptyFirstName
	}
	if strings.TrimSpace(r.LastName) == "" {
		return time.Time{}, core.ErrEmptyLastName
	}
	if !core.ValidEmail(r.Email) {
		return time.Time{}, core.ErrInvalidEmail
	}
	if strings.TrimSpace(r.Phone) == "" {
		return time.Time{}, core.ErrEmptyPhone
	}
	if strings.TrimSpace(r.LicenseNumber) == "" {
		return time.Time{}, ErrMissingLicense
	}
	if r.VehicleID <= 0 {
		return time.Time{}, ErrMissingVehicle
	}

	date, err := time.ParseInLocation(DateLayout, r.Date, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, r.Date)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return time.Time{}, ErrDateInPast
	}
	if !Offered(s, date, r.Time) {
		return time.Time{}, fmt.Errorf("%w: %s %s", ErrSlotUnavailable, r.Date, r.Time)
	}
	return date, nil
}

// NewBooking confirms a validated request for the named vehicle.
func NewBooking(r BookingRequest, vehicle string, now time.Time) core.Booking {
	return core.Booking{
		ID:            uuid.NewString(),
		FirstName:     strings.TrimSpace(r.FirstName),
		LastName:      strings.TrimSpace(r.LastName),
		Email:         strings.TrimSpace(r.Email),
		Phone:         strings.TrimSpace(r.Phone),
		LicenseNumber: strings.TrimSpace(r.LicenseNumber),
		Message:       strings.TrimSpace(r.Message),
		VehicleID:     r.VehicleID,
		Vehicle:       vehicle,
		Date:          r.Date,
		Time:          r.Time,
		Status:        core.BookingConfirmed,
		CreatedAt:     now.UTC(),
	}
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"showroom/internal/core"
	"showroom/internal/inventory"
	"showroom/internal/repository"
	"showroom/internal/testdrive"
)

// BookingService schedules test drives and passes each booking to sales.
type BookingService struct {
	catalog   *inventory.Service
	schedule  testdrive.Schedule
	bookings  *repository.BookingRepository
	publisher LeadPublisher
	clock     Clock
}

func NewBookingService(catalog *inventory.Service, schedule testdrive.Schedule, bookings *repository.BookingRepository, publisher LeadPublisher, clock Clock) *BookingService {
	return &BookingService{
		catalog:   catalog,
		schedule:  schedule,
		bookings:  bookings,
		publisher: publisher,
		clock:     clock,
	}
}

// Slots lists the times offered on date (YYYY-MM-DD).
func (s *BookingService) Slots(date string) ([]string, error) {
	d, err := time.ParseInLocation(testdrive.DateLayout, date, s.clock.now().Location())
	if err != nil {
		return nil, invalid(fmt.Errorf("%w: %q", testdrive.ErrInvalidDate, date))
	}
	return s.schedule.Slots(d), nil
}

// Vehicles lists what can be booked.
func (s *BookingService) Vehicles() []inventory.Vehicle {
	return s.catalog.All()
}

func (s *BookingService) Book(ctx context.Context, visitor string, req testdrive.BookingRequest) (core.Booking, error) {
	now := s.clock.now()
	if _, err := req.Validate(s.schedule, now); err != nil {
		return core.Booking{}, invalid(err)
	}
	vehicle, err := s.catalog.Get(req.VehicleID)
	if err != nil {
		return core.Booking{}, invalid(err)
	}

	booking := testdrive.NewBooking(req, vehicle.Name, now)
	if err := s.bookings.Add(ctx, visitor, booking); err != nil {
		return core.Booking{}, fmt.Errorf("save booking: %w", err)
	}

	lead := core.NewLead(core.LeadTestDrive, visitor, now)
	lead.Name = booking.FullName()
	lead.Email = booking.Email
	lead.Phone = booking.Phone
	lead.Vehicle = booking.Vehicle
	lead.Detail = booking.Date + " " + booking.Time
	if booking.Message != "" {
		lead.Detail += ": " + booking.Message
	}
	publishLead(ctx, s.publisher, lead)

	return booking, nil
}

func (s *BookingService) List(ctx context.Context, visitor string) ([]core.Booking, error) {
	return s.bookings.List(ctx, visitor)
}

func (s *BookingService) Cancel(ctx context.Context, visitor, id string) (core.Booking, error) {
	b, err := s.bookings.Cancel(ctx, visitor, id)
	if errors.Is(err, repository.ErrBookingNotFound) {
		return core.Booking{}, notFound(err)
	}
	return b, err
}

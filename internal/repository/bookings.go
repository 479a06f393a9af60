package repository

import (
	"context"

	"showroom/internal/core"
	"showroom/internal/storage"
)

// BookingRepository keeps test-drive bookings in the order they were made.
type BookingRepository struct {
	*base
}

func (r *BookingRepository) List(ctx context.Context, visitor string) ([]core.Booking, error) {
	return readList[core.Booking](ctx, r.base, visitor, storage.BucketBookings)
}

func (r *BookingRepository) Add(ctx context.Context, visitor string, b core.Booking) error {
	unlock := r.lock(visitor, storage.BucketBookings)
	defer unlock()

	bookings, err := readList[core.Booking](ctx, r.base, visitor, storage.BucketBookings)
	if err != nil {
		return err
	}
	return writeList(ctx, r.base, visitor, storage.BucketBookings, append(bookings, b))
}

// Cancel marks a booking cancelled and returns it. Bookings are kept so the
// account page can still show them.
func (r *BookingRepository) Cancel(ctx context.Context, visitor, id string) (core.Booking, error) {
	unlock := r.lock(visitor, storage.BucketBookings)
	defer unlock()

	bookings, err := readList[core.Booking](ctx, r.base, visitor, storage.BucketBookings)
	if err != nil {
		return core.Booking{}, err
	}
	for i := range bookings {
		if bookings[i].ID != id {
			continue
		}
		if bookings[i].Status == core.BookingCancelled {
			return bookings[i], ErrAlreadyCancelled
		}
		bookings[i].Status = core.BookingCancelled
		if err := writeList(ctx, r.base, visitor, storage.BucketBookings, bookings); err != nil {
			return core.Booking{}, err
		}
		return bookings[i], nil
	}
	return core.Booking{}, ErrBookingNotFound
}

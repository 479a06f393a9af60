package repository

import (
	"context"

	"showroom/internal/core"
	"showroom/internal/storage"
)

// SavedCarRepository holds the visitor's favourites, at most one entry per
// vehicle, newest first.
type SavedCarRepository struct {
	*base
}

func (r *SavedCarRepository) List(ctx context.Context, visitor string) ([]core.SavedCar, error) {
	return readList[core.SavedCar](ctx, r.base, visitor, storage.BucketSavedCars)
}

// Add saves car unless that vehicle is already saved. It reports whether the
// list changed.
func (r *SavedCarRepository) Add(ctx context.Context, visitor string, car core.SavedCar) (bool, error) {
	unlock := r.lock(visitor, storage.BucketSavedCars)
	defer unlock()

	cars, err := readList[core.SavedCar](ctx, r.base, visitor, storage.BucketSavedCars)
	if err != nil {
		return false, err
	}
	for _, c := range cars {
		if c.VehicleID == car.VehicleID {
			return false, nil
		}
	}
	cars = append([]core.SavedCar{car}, cars...)
	return true, writeList(ctx, r.base, visitor, storage.BucketSavedCars, cars)
}

// Remove drops a vehicle from the list. It reports whether it was there.
func (r *SavedCarRepository) Remove(ctx context.Context, visitor string, vehicleID int) (bool, error) {
	unlock := r.lock(visitor, storage.BucketSavedCars)
	defer unlock()

	cars, err := readList[core.SavedCar](ctx, r.base, visitor, storage.BucketSavedCars)
	if err != nil {
		return false, err
	}
	kept := cars[:0]
	for _, c := range cars {
		if c.VehicleID != vehicleID {
			kept = append(kept, c)
		}
	}
	if len(kept) == len(cars) {
		return false, nil
	}
	return true, writeList(ctx, r.base, visitor, storage.BucketSavedCars, kept)
}

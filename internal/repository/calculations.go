package repository

import (
	"context"
	"fmt"

	"showroom/internal/finance"
	"showroom/internal/ledger"
	"showroom/internal/storage"
)

const calculationCapacity = ledger.DefaultCapacity

// CalculationRepository stores the recent-calculations ledger, newest first
// and never longer than its capacity.
type CalculationRepository struct {
	*base
	capacity int
}

func (r *CalculationRepository) load(ctx context.Context, visitor string) (*ledger.Ledger[finance.SavedCalculation], error) {
	raw, _, err := r.read(ctx, visitor, storage.BucketCalculations)
	if err != nil {
		return nil, err
	}
	l, err := ledger.Unmarshal[finance.SavedCalculation](r.capacity, raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", storage.BucketCalculations, ErrCorruptData, err)
	}
	return l, nil
}

// List returns the saved calculations, newest first.
func (r *CalculationRepository) List(ctx context.Context, visitor string) ([]finance.SavedCalculation, error) {
	l, err := r.load(ctx, visitor)
	if err != nil {
		return nil, err
	}
	return l.Items(), nil
}

// Save prepends calc and evicts the oldest entry once the ledger is full.
// It returns the ledger after the save.
func (r *CalculationRepository) Save(ctx context.Context, visitor string, calc finance.SavedCalculation) ([]finance.SavedCalculation, error) {
	unlock := r.lock(visitor, storage.BucketCalculations)
	defer unlock()

	l, err := r.load(ctx, visitor)
	if err != nil {
		return nil, err
	}
	l.Push(calc)

	data, err := l.Marshal()
	if err != nil {
		return nil, err
	}
	if err := r.write(ctx, visitor, storage.BucketCalculations, data); err != nil {
		return nil, err
	}
	return l.Items(), nil
}

func (r *CalculationRepository) Clear(ctx context.Context, visitor string) error {
	unlock := r.lock(visitor, storage.BucketCalculations)
	defer unlock()
	return r.remove(ctx, visitor, storage.BucketCalculations)
}

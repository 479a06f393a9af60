package services

import (
	"context"
	"errors"
	"fmt"

	"showroom/internal/finance"
	"showroom/internal/repository"
)

var ErrNotComputable = errors.New("loan is not computable: price must exceed down payment and rate and term must be positive")

// FinanceService backs the loan calculator and the recent-calculations list.
type FinanceService struct {
	calculations *repository.CalculationRepository
	clock        Clock
}

func NewFinanceService(calculations *repository.CalculationRepository, clock Clock) *FinanceService {
	return &FinanceService{calculations: calculations, clock: clock}
}

// Calculate is the pure calculator; ok is false while inputs are incomplete.
func (s *FinanceService) Calculate(req finance.LoanRequest) (finance.LoanResult, bool) {
	return finance.Calculate(req)
}

func (s *FinanceService) Schedule(req finance.LoanRequest) ([]finance.Installment, error) {
	rows, ok := finance.Schedule(req)
	if !ok {
		return nil, invalid(ErrNotComputable)
	}
	return rows, nil
}

// Save computes req and records it at the head of the visitor's recent
// calculations. It returns the stored entry and the list after the save.
func (s *FinanceService) Save(ctx context.Context, visitor string, req finance.LoanRequest) (finance.SavedCalculation, []finance.SavedCalculation, error) {
	res, ok := finance.Calculate(req)
	if !ok {
		return finance.SavedCalculation{}, nil, invalid(ErrNotComputable)
	}
	calc := finance.NewSavedCalculation(req, res, s.clock.now())
	list, err := s.calculations.Save(ctx, visitor, calc)
	if err != nil {
		return finance.SavedCalculation{}, nil, fmt.Errorf("save calculation: %w", err)
	}
	return calc, list, nil
}

func (s *FinanceService) List(ctx context.Context, visitor string) ([]finance.SavedCalculation, error) {
	return s.calculations.List(ctx, visitor)
}

func (s *FinanceService) Clear(ctx context.Context, visitor string) error {
	return s.calculations.Clear(ctx, visitor)
}

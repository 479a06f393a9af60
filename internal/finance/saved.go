package finance

import (
	"time"

	"github.com/google/uuid"
)

// SavedCalculation is a result the visitor chose to keep, newest first in the
// recent-calculations ledger.
type SavedCalculation struct {
	ID string `json:"id"`
	LoanResult
	VehiclePrice float64   `json:"vehiclePrice"`
	CreatedAt    time.Time `json:"date"`
}

// NewSavedCalculation stamps a result for the ledger.
func NewSavedCalculation(req LoanRequest, res LoanResult, now time.Time) SavedCalculation {
	return SavedCalculation{
		ID:           uuid.NewString(),
		LoanResult:   res,
		VehiclePrice: req.VehiclePrice,
		CreatedAt:    now.UTC(),
	}
}

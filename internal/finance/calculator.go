// Package finance implements the fixed-rate loan calculator used by the
// finance page and the CLI.
package finance

import "math"

// LoanRequest is one set of calculator inputs.
type LoanRequest struct {
	VehiclePrice      float64 `json:"vehiclePrice"`
	DownPayment       float64 `json:"downPayment"`
	AnnualRatePercent float64 `json:"interestRate"`
	TermMonths        int     `json:"loanTerm"`
}

// LoanResult is derived from a LoanRequest and never stored on its own.
type LoanResult struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalAmount    float64 `json:"totalAmount"`
	Principal      float64 `json:"loanAmount"`
}

// Principal is the amount financed.
func (r LoanRequest) Principal() float64 {
	return r.VehiclePrice - r.DownPayment
}

// MonthlyRate converts the APR to a periodic monthly rate.
func (r LoanRequest) MonthlyRate() float64 {
	return r.AnnualRatePercent / 100 / 12
}

// Computable reports whether Calculate will produce a result.
func (r LoanRequest) Computable() bool {
	return r.Principal() > 0 && r.MonthlyRate() > 0 && r.TermMonths > 0
}

// Calculate returns the payment breakdown of a fully amortizing fixed-rate
// loan. The second return value is false when the inputs are out of domain
// (non-positive principal, rate or term); callers treat that as "not yet
// computable", not as an error.
func Calculate(req LoanRequest) (LoanResult, bool) {
	if !req.Computable() {
		return LoanResult{}, false
	}

	principal := req.Principal()
	rate := req.MonthlyRate()
	n := float64(req.TermMonths)

	// (1+r)^n - 1 via expm1/log1p keeps its digits when r is tiny.
	gm1 := math.Expm1(n * math.Log1p(rate))
	monthly := principal * rate * (gm1 + 1) / gm1
	if math.IsNaN(monthly) || math.IsInf(monthly, 0) {
		return LoanResult{}, false
	}
	// Any positive rate costs at least the interest-free payment.
	if floor := principal / n; monthly < floor {
		monthly = floor
	}

	total := math.Max(monthly*n, principal)
	return LoanResult{
		MonthlyPayment: monthly,
		TotalInterest:  total - principal,
		TotalAmount:    total,
		Principal:      principal,
	}, true
}

// Split is the principal/interest share of the total amount repaid, in
// percent. It backs the percentage bar under the result.
type Split struct {
	PrincipalPercent float64 `json:"principalPercent"`
	InterestPercent  float64 `json:"interestPercent"`
}

// SplitOf computes the shares of a result. A zero total yields a zero split.
func SplitOf(res LoanResult) Split {
	if res.TotalAmount <= 0 {
		return Split{}
	}
	return Split{
		PrincipalPercent: res.Principal / res.TotalAmount * 100,
		InterestPercent:  res.TotalInterest / res.TotalAmount * 100,
	}
}

// Installment is one row of an amortization schedule.
type Installment struct {
	Month     int     `json:"month"`
	Payment   float64 `json:"payment"`
	Principal float64 `json:"principal"`
	Interest  float64 `json:"interest"`
	Balance   float64 `json:"balance"`
}

// Schedule expands a request into its monthly installments. It is absent
// whenever Calculate is absent. The last installment absorbs float drift so
// the closing balance is exactly zero.
func Schedule(req LoanRequest) ([]Installment, bool) {
	res, ok := Calculate(req)
	if !ok {
		return nil, false
	}

	rate := req.MonthlyRate()
	balance := res.Principal
	rows := make([]Installment, 0, req.TermMonths)
	for m := 1; m <= req.TermMonths; m++ {
		interest := balance * rate
		principal := res.MonthlyPayment - interest
		if m == req.TermMonths {
			principal = balance
		}
		balance -= principal
		if balance < 0 {
			balance = 0
		}
		rows = append(rows, Installment{
			Month:     m,
			Payment:   principal + interest,
			Principal: principal,
			Interest:  interest,
			Balance:   balance,
		})
	}
	return rows, true
}

package http

import (
	"net/http"
	"strconv"

	"showroom/internal/core"
	"showroom/internal/finance"
	"showroom/internal/log"
)

type calculationResponse struct {
	Computable bool                `json:"computable"`
	Request    finance.LoanRequest `json:"request"`
	*finance.LoanResult
	Split   *finance.Split    `json:"split,omitempty"`
	Display map[string]string `json:"display,omitempty"`
}

func newCalculationResponse(req finance.LoanRequest, res finance.LoanResult, ok bool) calculationResponse {
	out := calculationResponse{Computable: ok, Request: req}
	if !ok {
		return out
	}
	split := finance.SplitOf(res)
	out.LoanResult = &res
	out.Split = &split
	out.Display = map[string]string{
		"monthlyPayment":   core.FormatUSD(res.MonthlyPayment),
		"totalInterest":    core.FormatUSD(res.TotalInterest),
		"totalAmount":      core.FormatUSD(res.TotalAmount),
		"loanAmount":       core.FormatUSD(res.Principal),
		"principalPercent": core.FormatPercent(split.PrincipalPercent),
		"interestPercent":  core.FormatPercent(split.InterestPercent),
	}
	return out
}

// handleCalculate is the live calculator. Incomplete inputs are not an
// error: the result is simply absent. With ?clamp=true the inputs are first
// pulled into the slider ranges.
func (s *Server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	var req finance.LoanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if clamp, _ := strconv.ParseBool(r.URL.Query().Get("clamp")); clamp {
		req = finance.ClampRequest(req)
	}
	res, ok := s.finance.Calculate(req)
	writeJSON(w, http.StatusOK, newCalculationResponse(req, res, ok))
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	req, err := parseLoanQuery(r.URL.Query())
	if err != nil {
		writeError(w, r, err)
		return
	}
	rows, err := s.finance.Schedule(req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	res, _ := s.finance.Calculate(req)
	writeJSON(w, http.StatusOK, map[string]any{
		"request":      req,
		"summary":      res,
		"installments": rows,
	})
}

type downPaymentBounds struct {
	Price  float64 `json:"price"`
	Preset float64 `json:"preset"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Step   float64 `json:"step"`
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	prices := finance.PresetPrices
	if raw := r.URL.Query().Get("price"); raw != "" {
		d, err := core.ParseAmount(raw)
		if err != nil {
			writeError(w, r, badRequest("price", err))
			return
		}
		prices = []float64{d.InexactFloat64()}
	}

	down := make([]downPaymentBounds, 0, len(prices))
	for _, p := range prices {
		lo, hi := finance.DownPaymentRange(p)
		down = append(down, downPaymentBounds{
			Price:  p,
			Preset: finance.PresetDownPayment(p),
			Min:    lo,
			Max:    hi,
			Step:   finance.DownPaymentStep,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"defaults":     finance.DefaultRequest(),
		"terms":        finance.Terms,
		"presetPrices": finance.PresetPrices,
		"downPayment":  down,
		"rate": map[string]float64{
			"min":  finance.MinRatePercent,
			"max":  finance.MaxRatePercent,
			"step": finance.RateStep,
		},
	})
}

func (s *Server) handleListCalculations(w http.ResponseWriter, r *http.Request) {
	list, err := s.finance.List(r.Context(), visitorID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"calculations": list})
}

func (s *Server) handleSaveCalculation(w http.ResponseWriter, r *http.Request) {
	var req finance.LoanRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	visitor := visitorID(r.Context())
	calc, list, err := s.finance.Save(r.Context(), visitor, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.structured.LogCalculationSaved(r.Context(), visitor, req.VehiclePrice, req.TermMonths, calc.MonthlyPayment)
	writeJSON(w, http.StatusCreated, map[string]any{"calculation": calc, "calculations": list})
}

func (s *Server) handleClearCalculations(w http.ResponseWriter, r *http.Request) {
	if err := s.finance.Clear(r.Context(), visitorID(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	log.FromContext(r.Context()).InfoContext(r.Context(), "Calculations cleared", log.FieldOperation, log.OpDelete)
	w.WriteHeader(http.StatusNoContent)
}

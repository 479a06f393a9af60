package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"showroom/internal/core"
	"showroom/internal/finance"
)

const maxBodyBytes = 64 << 10

// decodeJSON reads one JSON value from the body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadRequest)
		}
		return fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON body", errBadRequest)
	}
	return nil
}

// pathInt reads a numeric route variable.
func pathInt(r *http.Request, name string) (int, error) {
	raw := mux.Vars(r)[name]
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", errBadRequest, name)
	}
	return n, nil
}

// parseLoanQuery reads price, down, rate and term. Amounts accept "$" and
// thousands separators; missing values take the calculator defaults.
func parseLoanQuery(q url.Values) (finance.LoanRequest, error) {
	req := finance.DefaultRequest()
	if v := strings.TrimSpace(q.Get("price")); v != "" {
		d, err := core.ParseAmount(v)
		if err != nil {
			return req, fmt.Errorf("%w: price: %v", errBadRequest, err)
		}
		req.VehiclePrice = d.InexactFloat64()
		if q.Get("down") == "" {
			req.DownPayment = finance.PresetDownPayment(req.VehiclePrice)
		}
	}
	if v := strings.TrimSpace(q.Get("down")); v != "" {
		d, err := core.ParseAmount(v)
		if err != nil {
			return req, fmt.Errorf("%w: down: %v", errBadRequest, err)
		}
		req.DownPayment = d.InexactFloat64()
	}
	if v := strings.TrimSpace(q.Get("rate")); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, fmt.Errorf("%w: rate must be a number", errBadRequest)
		}
		req.AnnualRatePercent = rate
	}
	if v := strings.TrimSpace(q.Get("term")); v != "" {
		term, err := strconv.Atoi(v)
		if err != nil {
			return req, fmt.Errorf("%w: term must be a whole number of months", errBadRequest)
		}
		req.TermMonths = term
	}
	return req, nil
}

// sanitizeInput trims s and drops control characters other than tab and
// newlines.
func sanitizeInput(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

func badRequest(field string, err error) error {
	return fmt.Errorf("%w: %s: %v", errBadRequest, field, err)
}

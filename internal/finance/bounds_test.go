package finance

import (
	"math"
	"testing"
	"time"
)

func TestClampRequest(t *testing.T) {
	tests := []struct {
		name string
		in   LoanRequest
		want LoanRequest
	}{
		{
			name: "already in range",
			in:   LoanRequest{VehiclePrice: 280000, DownPayment: 56000, AnnualRatePercent: 4.9, TermMonths: 60},
			want: LoanRequest{VehiclePrice: 280000, DownPayment: 56000, AnnualRatePercent: 4.9, TermMonths: 60},
		},
		{
			name: "down payment below 10%",
			in:   LoanRequest{VehiclePrice: 300000, DownPayment: 0, AnnualRatePercent: 5, TermMonths: 48},
			want: LoanRequest{VehiclePrice: 300000, DownPayment: 30000, AnnualRatePercent: 5, TermMonths: 48},
		},
		{
			name: "down payment above 50% and rate too high",
			in:   LoanRequest{VehiclePrice: 300000, DownPayment: 290000, AnnualRatePercent: 25, TermMonths: 84},
			want: LoanRequest{VehiclePrice: 300000, DownPayment: 150000, AnnualRatePercent: 12, TermMonths: 84},
		},
		{
			name: "rate too low and off-list term",
			in:   LoanRequest{VehiclePrice: 100000, DownPayment: 20000, AnnualRatePercent: 0, TermMonths: 50},
			want: LoanRequest{VehiclePrice: 100000, DownPayment: 20000, AnnualRatePercent: 2, TermMonths: 48},
		},
		{
			name: "huge term snaps to longest",
			in:   LoanRequest{VehiclePrice: 100000, DownPayment: 20000, AnnualRatePercent: 7, TermMonths: 600},
			want: LoanRequest{VehiclePrice: 100000, DownPayment: 20000, AnnualRatePercent: 7, TermMonths: 84},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClampRequest(tt.in)
			if got.VehiclePrice != tt.want.VehiclePrice ||
				math.Abs(got.DownPayment-tt.want.DownPayment) > 1e-9 ||
				math.Abs(got.AnnualRatePercent-tt.want.AnnualRatePercent) > 1e-9 ||
				got.TermMonths != tt.want.TermMonths {
				t.Errorf("ClampRequest(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPresetDownPayment(t *testing.T) {
	for _, price := range PresetPrices {
		down := PresetDownPayment(price)
		if down != math.Round(price*0.2) {
			t.Errorf("preset down for %v = %v", price, down)
		}
		lo, hi := DownPaymentRange(price)
		if down < lo || down > hi {
			t.Errorf("preset down %v outside slider range [%v, %v]", down, lo, hi)
		}
	}
	if got := DefaultRequest(); got.DownPayment != 56000 || got.TermMonths != 60 {
		t.Fatalf("unexpected default request %+v", got)
	}
}

func TestValidTerm(t *testing.T) {
	for _, n := range []int{36, 48, 60, 72, 84} {
		if !ValidTerm(n) {
			t.Errorf("%d should be valid", n)
		}
	}
	for _, n := range []int{0, 12, 61, 120} {
		if ValidTerm(n) {
			t.Errorf("%d should be invalid", n)
		}
	}
}

func TestNewSavedCalculation(t *testing.T) {
	req := DefaultRequest()
	res, _ := Calculate(req)
	now := time.Date(2024, 1, 15, 10, 0, 0, 0, time.FixedZone("EST", -5*3600))
	saved := NewSavedCalculation(req, res, now)
	if saved.ID == "" {
		t.Fatal("expected an id")
	}
	if saved.VehiclePrice != req.VehiclePrice || saved.MonthlyPayment != res.MonthlyPayment {
		t.Fatalf("unexpected saved calculation %+v", saved)
	}
	if saved.CreatedAt.Location() != time.UTC {
		t.Fatal("timestamps are stored in UTC")
	}
}

package core

import "testing"

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"280000", "280000", true},
		{"$280,000.50", "280000.5", true},
		{"12.345", "12.35", true}, // half-up rounding
		{" 2.50 ", "2.5", true},
		{"0", "0", true},
		{"-1", "", false},
		{"abc", "", false},
		{"1.2.3", "", false},
		{"", "", false},
		{"$", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if err != nil || got.String() != tc.out {
				t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got.String(), err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		in  float64
		out string
	}{
		{0, "$0"},
		{999.4, "$999"},
		{4214.37, "$4,214"},
		{252862.5, "$252,863"},
		{1000000, "$1,000,000"},
		{-1234.2, "-$1,234"},
	}
	for _, tc := range cases {
		if got := FormatUSD(tc.in); got != tc.out {
			t.Errorf("FormatUSD(%v) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestRoundCents(t *testing.T) {
	if got := RoundCents(4214.376); got != 4214.38 {
		t.Fatalf("RoundCents = %v, want 4214.38", got)
	}
	if got := FormatPercent(88.57142); got != "88.6%" {
		t.Fatalf("FormatPercent = %q", got)
	}
}

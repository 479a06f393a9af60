package inventory

import (
	"errors"
	"testing"
	"time"

	"showroom/internal/cache"
)

func names(vs []Vehicle) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name
	}
	return out
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		name                       string
		q, make, cat, year, prange string
		want                       Filter
		wantErr                    error
	}{
		{name: "all means any", make: "all", cat: "all", year: "all", prange: "all", want: Filter{}},
		{name: "make is lowercased", make: "McLaren", want: Filter{Make: "mclaren"}},
		{name: "bounded range", prange: "300000-500000", want: Filter{MinPrice: 300000, MaxPrice: 500000}},
		{name: "open range", prange: "500000", want: Filter{MinPrice: 500000}},
		{name: "year", year: "2023", want: Filter{Year: 2023}},
		{name: "query trimmed", q: "  ferr ", want: Filter{Query: "ferr"}},
		{name: "bad year", year: "twenty", wantErr: ErrInvalidYear},
		{name: "negative year", year: "-1", wantErr: ErrInvalidYear},
		{name: "bad range", prange: "cheap", wantErr: ErrInvalidPriceRange},
		{name: "inverted range", prange: "500000-100", wantErr: ErrInvalidPriceRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFilter(tt.q, tt.make, tt.cat, tt.year, tt.prange)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSearch(t *testing.T) {
	svc := NewService(DefaultVehicles(), nil, nil)
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"everything", Filter{}, []string{"Ferrari 488 GTB", "Lamborghini Aventador", "McLaren 720S"}},
		{"query on make", Filter{Query: "LAMBO"}, []string{"Lamborghini Aventador"}},
		{"query on name", Filter{Query: "720"}, []string{"McLaren 720S"}},
		{"make", Filter{Make: "ferrari"}, []string{"Ferrari 488 GTB"}},
		{"year", Filter{Year: 2023}, []string{"McLaren 720S"}},
		{"under 300k", Filter{MinPrice: 0, MaxPrice: 300000}, []string{"Ferrari 488 GTB"}},
		{"300k to 500k", Filter{MinPrice: 300000, MaxPrice: 500000}, []string{"Lamborghini Aventador", "McLaren 720S"}},
		{"500k and up", Filter{MinPrice: 500000}, []string{}},
		{"sedan", Filter{Category: "sedan"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := svc.Search(tt.filter)
			got := names(res.Vehicles)
			if len(got) != len(tt.want) || res.Total != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestSearch_PriceStats(t *testing.T) {
	svc := NewService(DefaultVehicles(), nil, nil)

	res := svc.Search(Filter{})
	if res.Lowest != 280000 || res.Median != 320000 || res.Highest != 450000 {
		t.Fatalf("stats = %v/%v/%v", res.Lowest, res.Median, res.Highest)
	}

	res = svc.Search(Filter{MinPrice: 300000, MaxPrice: 500000})
	if res.Median != 385000 {
		t.Fatalf("even-count median = %v, want 385000", res.Median)
	}

	res = svc.Search(Filter{Category: "suv"})
	if res.Lowest != 0 || res.Median != 0 || res.Highest != 0 {
		t.Fatalf("empty result stats = %+v", res)
	}
}

func TestSearch_Cached(t *testing.T) {
	c := cache.NewLRUCache[Result](16, time.Minute)
	svc := NewService(DefaultVehicles(), c, nil)

	first := svc.Search(Filter{Make: "mclaren"})
	second := svc.Search(Filter{Make: "mclaren"})
	if first.Total != 1 || second.Total != 1 {
		t.Fatalf("totals %d %d", first.Total, second.Total)
	}
	if s := c.Stats(); s.Hits != 1 || s.Size != 1 {
		t.Fatalf("cache stats = %+v", s)
	}
}

func TestGet(t *testing.T) {
	svc := NewService(DefaultVehicles(), nil, nil)
	v, err := svc.Get(2)
	if err != nil {
		t.Fatal(err)
	}
	if v.Specs.VIN != "ZHWUC1ZD5KLA12345" || len(v.Features) != 8 {
		t.Fatalf("unexpected vehicle %+v", v)
	}
	if _, err := svc.Get(99); !errors.Is(err, ErrVehicleNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	svc := NewService(DefaultVehicles(), nil, nil)
	all := svc.All()
	all[0].Name = "changed"
	if svc.All()[0].Name != "Ferrari 488 GTB" {
		t.Fatal("All leaked internal slice")
	}
}

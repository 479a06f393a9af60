package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidYear       = errors.New("year must be a positive number or \"all\"")
	ErrInvalidPriceRange = errors.New("price range must be \"min-max\", \"min\" or \"all\"")
)

// Filter narrows a search. Zero values mean "any".
type Filter struct {
	Query    string
	Make     string
	Category string
	Year     int
	MinPrice float64
	MaxPrice float64 // 0 means open-ended
}

// ParseFilter builds a Filter from raw query values; "all" and "" are
// treated as no filter.
func ParseFilter(query, makeName, category, year, priceRange string) (Filter, error) {
	f := Filter{
		Query:    strings.TrimSpace(query),
		Make:     normalize(makeName),
		Category: normalize(category),
	}

	if y := normalize(year); y != "" {
		n, err := strconv.Atoi(y)
		if err != nil || n <= 0 {
			return Filter{}, fmt.Errorf("%w: %q", ErrInvalidYear, year)
		}
		f.Year = n
	}

	if pr := normalize(priceRange); pr != "" {
		lo, hi, err := parsePriceRange(pr)
		if err != nil {
			return Filter{}, err
		}
		f.MinPrice, f.MaxPrice = lo, hi
	}
	return f, nil
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "all" {
		return ""
	}
	return s
}

// parsePriceRange accepts "300000-500000" or an open-ended "500000".
func parsePriceRange(s string) (lo, hi float64, err error) {
	minPart, maxPart, hasMax := strings.Cut(s, "-")
	lo, err = strconv.ParseFloat(minPart, 64)
	if err != nil || lo < 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPriceRange, s)
	}
	if !hasMax {
		return lo, 0, nil
	}
	hi, err = strconv.ParseFloat(maxPart, 64)
	if err != nil || hi < lo {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidPriceRange, s)
	}
	return lo, hi, nil
}

// Match reports whether v passes every set criterion.
func (f Filter) Match(v Vehicle) bool {
	if f.Query != "" && !v.matchesQuery(f.Query) {
		return false
	}
	if f.Make != "" && strings.ToLower(v.Make) != f.Make {
		return false
	}
	if f.Category != "" && v.Category != f.Category {
		return false
	}
	if f.Year != 0 && v.Year != f.Year {
		return false
	}
	if v.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && v.Price > f.MaxPrice {
		return false
	}
	return true
}

// Key identifies a filter for caching.
func (f Filter) Key() string {
	return fmt.Sprintf("q=%s|make=%s|cat=%s|year=%d|price=%g-%g",
		strings.ToLower(f.Query), f.Make, f.Category, f.Year, f.MinPrice, f.MaxPrice)
}

package inventory

import (
	"errors"
	"log/slog"
	"slices"
	"sort"

	"showroom/internal/cache"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

// Result is one page of search results with price statistics over the
// matches, zero when nothing matched.
type Result struct {
	Vehicles []Vehicle `json:"vehicles"`
	Total    int       `json:"total"`
	Lowest   float64   `json:"lowest"`
	Median   float64   `json:"median"`
	Highest  float64   `json:"highest"`
}

// Service answers catalog queries. Search results are memoized per filter.
type Service struct {
	vehicles []Vehicle
	byID     map[int]Vehicle
	results  cache.Cache[Result]
	logger   *slog.Logger
}

// NewService indexes vehicles. A nil results cache disables memoization.
func NewService(vehicles []Vehicle, results cache.Cache[Result], logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	byID := make(map[int]Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID] = v
	}
	return &Service{vehicles: vehicles, byID: byID, results: results, logger: logger}
}

// All returns the catalog in display order.
func (s *Service) All() []Vehicle {
	return slices.Clone(s.vehicles)
}

// Get returns a vehicle by id.
func (s *Service) Get(id int) (Vehicle, error) {
	v, ok := s.byID[id]
	if !ok {
		return Vehicle{}, ErrVehicleNotFound
	}
	return v, nil
}

func (s *Service) Search(f Filter) Result {
	if s.results == nil {
		return s.search(f)
	}
	res, err := s.results.GetOrLoad(f.Key(), func() (Result, error) {
		s.logger.Debug("Inventory search cache miss", "filter", f.Key())
		return s.search(f), nil
	})
	if err != nil {
		return s.search(f)
	}
	return res
}

func (s *Service) search(f Filter) Result {
	matches := make([]Vehicle, 0, len(s.vehicles))
	for _, v := range s.vehicles {
		if f.Match(v) {
			matches = append(matches, v)
		}
	}
	res := Result{Vehicles: matches, Total: len(matches)}
	res.Lowest, res.Median, res.Highest = priceStats(matches)
	return res
}

func priceStats(vs []Vehicle) (lowest, median, highest float64) {
	if len(vs) == 0 {
		return 0, 0, 0
	}
	prices := make([]float64, len(vs))
	for i, v := range vs {
		prices[i] = v.Price
	}
	sort.Float64s(prices)
	mid := len(prices) / 2
	median = prices[mid]
	if len(prices)%2 == 0 {
		median = (prices[mid-1] + prices[mid]) / 2
	}
	return prices[0], median, prices[len(prices)-1]
}

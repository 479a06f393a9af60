package http

import (
	"errors"
	"net/http"

	"showroom/internal/inventory"
)

func (s *Server) handleSearchInventory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := inventory.ParseFilter(
		sanitizeInput(q.Get("q")),
		q.Get("make"),
		q.Get("category"),
		q.Get("year"),
		q.Get("price"),
	)
	if err != nil {
		writeError(w, r, badRequest("filter", err))
		return
	}
	writeJSON(w, http.StatusOK, s.inventory.Search(f))
}

func (s *Server) handleInventoryOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"makes":       inventory.Makes,
		"categories":  inventory.Categories,
		"years":       inventory.Years,
		"priceRanges": inventory.PriceRanges,
	})
}

func (s *Server) handleGetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	v, err := s.inventory.Get(id)
	if errors.Is(err, inventory.ErrVehicleNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

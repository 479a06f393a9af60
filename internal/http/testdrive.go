package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"showroom/internal/testdrive"
)

// handleSlots lists the times offered on ?date=YYYY-MM-DD along with the
// vehicles that can be booked.
func (s *Server) handleSlots(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	slots, err := s.bookings.Slots(date)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if slots == nil {
		slots = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":     date,
		"slots":    slots,
		"vehicles": s.bookings.Vehicles(),
	})
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	var req testdrive.BookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	visitor := visitorID(r.Context())
	b, err := s.bookings.Book(r.Context(), visitor, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.structured.LogBooking(r.Context(), visitor, b.ID, b.Vehicle, b.Date+" "+b.Time)
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	list, err := s.bookings.List(r.Context(), visitorID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"testDrives": list})
}

func (s *Server) handleCancelBooking(w http.ResponseWriter, r *http.Request) {
	b, err := s.bookings.Cancel(r.Context(), visitorID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

package http

import (
	"net/http"

	"showroom/internal/core"
	"showroom/internal/services"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.account.Dashboard(r.Context(), visitorID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.account.Register(r.Context(), visitorID(r.Context()), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.account.Profile(r.Context(), visitorID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var u services.ProfileUpdate
	if err := decodeJSON(w, r, &u); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := s.account.UpdateProfile(r.Context(), visitorID(r.Context()), u)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type saveCarRequest struct {
	VehicleID int `json:"vehicleId"`
}

// handleSaveCar answers 201 for a new favourite and 200 when it was
// already saved.
func (s *Server) handleSaveCar(w http.ResponseWriter, r *http.Request) {
	var req saveCarRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	car, added, err := s.account.SaveCar(r.Context(), visitorID(r.Context()), req.VehicleID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	writeJSON(w, status, car)
}

func (s *Server) handleRemoveSavedCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.account.RemoveSavedCar(r.Context(), visitorID(r.Context()), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var msg core.ContactMessage
	if err := decodeJSON(w, r, &msg); err != nil {
		writeError(w, r, err)
		return
	}
	lead, err := s.account.Contact(r.Context(), visitorID(r.Context()), msg)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{
		"id":      lead.ID,
		"message": "Thanks " + lead.Name + ", our team will be in touch shortly.",
	})
}

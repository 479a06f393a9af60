package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"showroom/internal/log"
)

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	msgs, err := s.receptionist.Send(r.Context(), visitorID(r.Context()), sanitizeInput(req.Message))
	if err != nil {
		writeError(w, r, err)
		return
	}
	logReply(r, msgs[len(msgs)-1].Intent)
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func (s *Server) handleQuickActions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"quickActions": s.receptionist.QuickActions()})
}

func (s *Server) handleQuickAction(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.receptionist.QuickAction(r.Context(), visitorID(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	logReply(r, msgs[len(msgs)-1].Intent)
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	msgs, err := s.receptionist.History(r.Context(), visitorID(r.Context()))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": msgs})
}

func (s *Server) handleClearChat(w http.ResponseWriter, r *http.Request) {
	if err := s.receptionist.Clear(r.Context(), visitorID(r.Context())); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func logReply(r *http.Request, intent string) {
	log.FromContext(r.Context()).DebugContext(r.Context(), "Receptionist replied",
		log.FieldIntent, intent,
		log.FieldOperation, log.OpChat)
}

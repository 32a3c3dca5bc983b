package http

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ReplyRequest is one dialogue turn from the caller
type ReplyRequest struct {
	Text string `json:"text"`
}

// ReplyResponse is the outcome of one dialogue turn
type ReplyResponse struct {
	Reply  string `json:"reply"`
	Mode   string `json:"mode"`
	Intent string `json:"intent"`
}

// Health endpoints

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Pinger{"postgres": s.db, "redis": s.redis}
	for name, p := range checks {
		if p == nil {
			continue
		}
		if err := p.Ping(r.Context()); err != nil {
			s.logger.Warn("readiness check failed", "dependency", name, "error", err)
			writeError(w, http.StatusServiceUnavailable, name+" unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Dialogue endpoints

// handleReply runs one dialogue turn for the authenticated user. Empty
// input is not rejected here; the orchestrator answers it with a
// clarification message the same way the voice channel does.
func (s *Server) handleReply(w http.ResponseWriter, r *http.Request) {
	var req ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Text) > 4096 {
		writeError(w, http.StatusBadRequest, "text too long")
		return
	}

	claims := GetClaims(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := s.conversation.Reply(r.Context(), claims.UserID, strings.TrimSpace(req.Text))
	if err != nil {
		s.logger.Error("reply turn failed", "user_id", claims.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to process turn")
		return
	}

	writeJSON(w, http.StatusOK, ReplyResponse{
		Reply:  result.Reply,
		Mode:   string(result.Mode),
		Intent: string(result.Intent),
	})
}

// handleClearSession drops the caller's conversation state.
func (s *Server) handleClearSession(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := s.conversation.ClearSession(r.Context(), claims.UserID); err != nil {
		s.logger.Error("failed to clear session", "user_id", claims.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

// Response helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

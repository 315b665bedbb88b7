// internal/server/handlers.go
package server

import (
	"encoding/json"
	"net/http"

	stderrors "mergington-activities/internal/common/errors"
	"mergington-activities/internal/common/metrics"
	"mergington-activities/internal/common/validation"
)

// messageResponse is the wire shape for successful mutations.
type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListActivities returns the full name-to-record mapping, participants
// included. No filtering, no pagination.
func (s *Server) handleListActivities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.List())
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	activityName := r.PathValue("activityName")
	email := r.URL.Query().Get("email")

	if err := validation.ValidateEmail(email); err != nil {
		s.errHandler.WriteHTTP(w, err)
		return
	}

	message, err := s.registry.Enroll(activityName, email)
	if err != nil {
		s.recordFailure(activityName, err)
		s.errHandler.WriteHTTP(w, err)
		return
	}

	metrics.SignupsTotal.WithLabelValues(activityName).Inc()
	s.logger.Info("student signed up", map[string]interface{}{
		"activity": activityName,
		"email":    email,
	})
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

func (s *Server) handleUnregister(w http.ResponseWriter, r *http.Request) {
	activityName := r.PathValue("activityName")
	email := r.URL.Query().Get("email")

	if err := validation.ValidateEmail(email); err != nil {
		s.errHandler.WriteHTTP(w, err)
		return
	}

	message, err := s.registry.Withdraw(activityName, email)
	if err != nil {
		s.recordFailure(activityName, err)
		s.errHandler.WriteHTTP(w, err)
		return
	}

	metrics.WithdrawalsTotal.WithLabelValues(activityName).Inc()
	s.logger.Info("student unregistered", map[string]interface{}{
		"activity": activityName,
		"email":    email,
	})
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

func (s *Server) recordFailure(activityName string, err error) {
	if stdErr, ok := err.(*stderrors.StandardError); ok {
		metrics.SignupFailuresTotal.WithLabelValues(activityName, string(stdErr.Code)).Inc()
	}
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

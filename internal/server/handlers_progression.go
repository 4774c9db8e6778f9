package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/repcoach/internal/engine"
	"github.com/claude/repcoach/internal/models"
	"github.com/google/uuid"
)

// adjustRequest is the stateless plan-adjust body: callers supply the
// snapshot they already have instead of the server recomputing it.
type adjustRequest struct {
	Targets           []models.PlannedExerciseTarget `json:"targets"`
	Readiness         models.ReadinessSnapshot       `json:"readiness"`
	RoundingIncrement float64                        `json:"rounding_increment_kg"`
}

func (s *Server) handleAdjustPlan(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"targets": engine.AdjustTargets(req.Targets, req.Readiness, req.RoundingIncrement),
	})
}

// evaluateRequest is the stateless progression-evaluate body. A nil rule
// falls back to the caller's stored rule.
type evaluateRequest struct {
	Planned       models.PlannedExerciseTarget `json:"planned"`
	CompletedSets []models.LoggedSet           `json:"completed_sets"`
	Rule          *models.ProgressionRule      `json:"rule,omitempty"`
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	rule := models.DefaultRule()
	if req.Rule != nil {
		rule = *req.Rule
	} else if s.db != nil {
		stored, err := s.db.GetProgressionRule(r.Context(), userIDFromContext(r))
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		rule = stored
	}

	writeJSON(w, http.StatusOK, engine.Evaluate(req.Planned, req.CompletedSets, rule))
}

// closeRequest identifies one logged session to evaluate and persist.
type closeRequest struct {
	SessionID uuid.UUID `json:"session_id"`
}

// closeResponse reports the per-exercise outcomes of closing a session.
type closeResponse struct {
	SessionID   uuid.UUID                           `json:"session_id"`
	Evaluations []models.ExerciseProgressEvaluation `json:"evaluations"`
	Unplanned   []string                            `json:"unplanned,omitempty"`
}

// handleCloseSession evaluates every exercise a session logged against its
// stored target and persists the returned next targets. Exercises without a
// stored target are reported back, not evaluated.
func (s *Server) handleCloseSession(w http.ResponseWriter, r *http.Request) {
	var req closeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.SessionID == uuid.Nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "session_id required"})
		return
	}
	uid := userIDFromContext(r)

	exercises, err := s.db.GetSessionExercises(r.Context(), uid, req.SessionID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if len(exercises) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}

	rule, err := s.db.GetProgressionRule(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	resp := closeResponse{SessionID: req.SessionID}
	for _, exercise := range exercises {
		target, err := s.db.GetPlannedTarget(r.Context(), uid, exercise)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if target == nil {
			resp.Unplanned = append(resp.Unplanned, exercise)
			continue
		}

		sets, err := s.db.GetSessionSets(r.Context(), uid, req.SessionID, exercise)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}

		eval := engine.Evaluate(target.Target(), sets, rule)
		if err := s.db.ApplyEvaluation(r.Context(), uid, eval); err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		resp.Evaluations = append(resp.Evaluations, eval)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetTargets(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.GetPlannedTargets(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handlePutTarget(w http.ResponseWriter, r *http.Request) {
	var target models.PlannedExerciseTarget
	if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if target.Exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "exercise required"})
		return
	}

	if err := s.db.UpsertPlannedTarget(r.Context(), userIDFromContext(r), target); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, target)
}

func (s *Server) handleGetRule(w http.ResponseWriter, r *http.Request) {
	rule, err := s.db.GetProgressionRule(r.Context(), userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

func (s *Server) handlePutRule(w http.ResponseWriter, r *http.Request) {
	var rule models.ProgressionRule
	if err := json.NewDecoder(r.Body).Decode(&rule); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	uid := userIDFromContext(r)

	if err := s.db.UpsertProgressionRule(r.Context(), uid, rule); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	stored, err := s.db.GetProgressionRule(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, stored)
}

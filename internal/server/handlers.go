package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/claude/repcoach/internal/engine"
	"github.com/claude/repcoach/internal/models"
)

func (s *Server) handleBiometricsIngest(w http.ResponseWriter, r *http.Request) {
	var payload models.WearablePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	result, err := s.wearable.Ingest(r.Context(), &payload, userIDFromContext(r))
	if err != nil {
		s.log.Error("biometrics ingest error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSetsIngest(w http.ResponseWriter, r *http.Request) {
	result, err := s.setlog.Ingest(r.Context(), r.Body, userIDFromContext(r))
	if err != nil {
		s.log.Error("set log ingest error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReadiness(w http.ResponseWriter, r *http.Request) {
	day, err := parseDateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	snap, err := s.snapshotForDay(r.Context(), day, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	day, err := parseDateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	uid := userIDFromContext(r)

	snap, err := s.snapshotForDay(r.Context(), day, uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	rule, err := s.db.GetProgressionRule(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	rows, err := s.db.GetPlannedTargets(r.Context(), uid)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	targets := make([]models.PlannedExerciseTarget, 0, len(rows))
	for _, row := range rows {
		targets = append(targets, row.Target())
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"readiness": snap,
		"targets":   engine.AdjustTargets(targets, snap, rule.WeightIncrement),
	})
}

func (s *Server) handleQueryBiometrics(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rows, err := s.db.QueryBiometricDays(r.Context(), start, end, userIDFromContext(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleQuerySets(w http.ResponseWriter, r *http.Request) {
	start, end, err := parseTimeRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	exerciseFilter := r.URL.Query().Get("exercise")
	rows, err := s.db.QueryLoggedSets(r.Context(), start, end, userIDFromContext(r), exerciseFilter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

// snapshotForDay assembles the readiness inputs for one day and runs the
// estimator: baseline history, any third-party score, and the user's rule.
func (s *Server) snapshotForDay(ctx context.Context, day time.Time, userID int) (models.ReadinessSnapshot, error) {
	rule, err := s.db.GetProgressionRule(ctx, userID)
	if err != nil {
		return models.ReadinessSnapshot{}, err
	}

	history, err := s.db.GetReadinessWindow(ctx, day, engine.BaselineWindowDays, userID)
	if err != nil {
		return models.ReadinessSnapshot{}, err
	}

	external, err := s.db.GetExternalReadiness(ctx, day, day.AddDate(0, 0, 1), userID)
	if err != nil {
		return models.ReadinessSnapshot{}, err
	}

	return engine.Snapshot(history, external, day, rule), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseDateParam reads the optional date query parameter, defaulting to
// the current UTC day.
func parseDateParam(r *http.Request) (time.Time, error) {
	s := r.URL.Query().Get("date")
	if s == "" {
		return models.FloorDay(time.Now()), nil
	}
	return models.ParseDay(s)
}

func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" {
		// Default: last 30 days
		end = time.Now()
		start = end.AddDate(0, 0, -30)
		return
	}

	start, err = time.Parse(time.RFC3339, startStr)
	if err != nil {
		start, err = time.Parse(models.DayLayout, startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}

	if endStr == "" {
		end = time.Now()
	} else {
		end, err = time.Parse(time.RFC3339, endStr)
		if err != nil {
			end, err = time.Parse(models.DayLayout, endStr)
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			// End of day for date-only
			end = end.Add(24 * time.Hour)
		}
	}
	return
}

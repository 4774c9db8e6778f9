package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/repcoach/internal/models"
)

// TestHandleAdjustPlan verifies the stateless adjust endpoint scales
// weighted targets and passes bodyweight targets through.
func TestHandleAdjustPlan(t *testing.T) {
	s := &Server{}
	body := `{
		"targets": [
			{"exercise": "Squat", "target_weight_kg": 100, "rep_low": 5, "rep_high": 8},
			{"exercise": "Pull-up", "target_weight_kg": null, "rep_low": 8, "rep_high": 12}
		],
		"readiness": {"band": "low", "multiplier": 0.9},
		"rounding_increment_kg": 2.5
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan/adjust", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleAdjustPlan(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp struct {
		Targets []models.PlannedExerciseTarget `json:"targets"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if len(resp.Targets) != 2 {
		t.Fatalf("targets = %d, want 2", len(resp.Targets))
	}
	if resp.Targets[0].TargetWeight == nil || *resp.Targets[0].TargetWeight != 90 {
		t.Errorf("adjusted weight = %v, want 90", resp.Targets[0].TargetWeight)
	}
	if resp.Targets[1].TargetWeight != nil {
		t.Errorf("bodyweight target weight = %v, want nil", resp.Targets[1].TargetWeight)
	}
}

// TestHandleAdjustPlanBadJSON verifies malformed bodies get a 400.
func TestHandleAdjustPlanBadJSON(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/plan/adjust", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	s.handleAdjustPlan(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestHandleEvaluateWithRule verifies the stateless evaluate endpoint with
// an inline rule: a successful top set advances the weight.
func TestHandleEvaluateWithRule(t *testing.T) {
	s := &Server{}
	body := `{
		"planned": {"exercise": "Squat", "target_weight_kg": 100, "rep_low": 5, "rep_high": 8},
		"completed_sets": [
			{"weight_kg": 100, "reps": 8},
			{"weight_kg": 100, "reps": 6}
		],
		"rule": {
			"multipliers": {"low": 0.9, "neutral": 1.0, "high": 1.025},
			"miss_threshold": 3,
			"deload_percent": 0.1,
			"weight_increment_kg": 2.5
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/progression/evaluate", strings.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleEvaluate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var eval models.ExerciseProgressEvaluation
	if err := json.NewDecoder(rec.Body).Decode(&eval); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !eval.WasSuccessful {
		t.Error("expected a successful evaluation")
	}
	if eval.NextTarget.TargetWeight == nil || *eval.NextTarget.TargetWeight != 102.5 {
		t.Errorf("next weight = %v, want 102.5", eval.NextTarget.TargetWeight)
	}
}

// TestHandleCloseSessionNilID verifies a missing session ID is rejected
// before any storage access.
func TestHandleCloseSessionNilID(t *testing.T) {
	s := &Server{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/progression/close", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	s.handleCloseSession(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

// TestParseDateParamDefault verifies the date parameter defaults to the
// current floored day.
func TestParseDateParamDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/readiness", nil)
	day, err := parseDateParam(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !day.Equal(models.FloorDay(time.Now())) {
		t.Errorf("default day = %v, want today floored", day)
	}
}

// TestParseDateParam verifies explicit dates parse and floor.
func TestParseDateParam(t *testing.T) {
	tests := []struct {
		query string
		want  time.Time
	}{
		{"date=2026-03-10", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
		{"date=2026-03-10T14:30:00Z", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/readiness?"+tt.query, nil)
		day, err := parseDateParam(req)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.query, err)
			continue
		}
		if !day.Equal(tt.want) {
			t.Errorf("%s: day = %v, want %v", tt.query, day, tt.want)
		}
	}
}

// TestParseDateParamInvalid verifies garbage dates error.
func TestParseDateParamInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/readiness?date=yesterday", nil)
	if _, err := parseDateParam(req); err == nil {
		t.Error("expected parse error")
	}
}

// TestParseTimeRange verifies the range parameter combinations.
func TestParseTimeRange(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?start=2026-03-01&end=2026-03-10", nil)
	start, end, err := parseTimeRange(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if start.Day() != 1 {
		t.Errorf("start day = %d, want 1", start.Day())
	}
	// Date-only end extends to end of day
	if end.Day() != 11 {
		t.Errorf("end day = %d, want 11", end.Day())
	}
}

package mcp

import (
	"context"
	"time"

	"github.com/claude/repcoach/internal/engine"
	"github.com/claude/repcoach/internal/models"
	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
)

// defaultTimeRange returns start/end defaulting to the last 30 days.
func defaultTimeRange(startStr, endStr string) (time.Time, time.Time, error) {
	var start, end time.Time
	var err error

	if endStr != "" {
		end, err = parseFlexTime(endStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		end = time.Now()
	}

	if startStr != "" {
		start, err = parseFlexTime(startStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	} else {
		start = end.AddDate(0, 0, -30)
	}

	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(models.DayLayout, s)
	if err == nil {
		return t, nil
	}
	return time.Time{}, err
}

// --- Tool definitions ---

var toolGetReadiness = mcp.NewTool("get_readiness",
	mcp.WithDescription("Compute the readiness snapshot for a day: 0-100 score, low/neutral/high band, the resulting load multiplier, and the biometric deltas behind the score. A third-party wearable score for the day wins over the biometric model."),
	mcp.WithString("date", mcp.Description("Day to score (ISO 8601 or YYYY-MM-DD). Defaults to today.")),
)

var toolGetAdjustedPlan = mcp.NewTool("get_adjusted_plan",
	mcp.WithDescription("Return the stored exercise targets with weights scaled by the day's readiness multiplier and rounded to the configured increment. Bodyweight exercises pass through unchanged."),
	mcp.WithString("date", mcp.Description("Day whose readiness drives the adjustment. Defaults to today.")),
)

var toolEvaluateProgression = mcp.NewTool("evaluate_progression",
	mcp.WithDescription("Preview the progression outcome for one exercise in a logged session: advance, hold, or deload, and the next target. Nothing is persisted; closing the session through the API applies the result."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name exactly as stored (e.g. 'Bench Press (Barbell)')")),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session UUID from the logged sets")),
)

var toolGetBiometrics = mcp.NewTool("get_biometrics",
	mcp.WithDescription("Query stored per-day biometric readings: sleep hours, resting heart rate, and HRV."),
	mcp.WithString("start", mcp.Description("Start date (ISO 8601 or YYYY-MM-DD). Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
)

var toolGetTargets = mcp.NewTool("get_targets",
	mcp.WithDescription("List all stored exercise targets: weight, rep range, and current failure streak."),
)

var toolGetLoggedSets = mcp.NewTool("get_logged_sets",
	mcp.WithDescription("Query logged training sets with an optional exercise filter. Includes warmups, session IDs, and session dates."),
	mcp.WithString("start", mcp.Description("Start date. Defaults to 30 days ago.")),
	mcp.WithString("end", mcp.Description("End date. Defaults to now.")),
	mcp.WithString("exercise", mcp.Description("Filter by exercise name (partial match, e.g. 'bench')")),
)

// --- Tool handlers ---

// snapshotForDay assembles the readiness inputs for one day and runs the
// estimator.
func (h *handlers) snapshotForDay(ctx context.Context, day time.Time, userID int) (models.ReadinessSnapshot, models.ProgressionRule, error) {
	rule, err := h.ds.GetProgressionRule(ctx, userID)
	if err != nil {
		return models.ReadinessSnapshot{}, models.ProgressionRule{}, err
	}

	history, err := h.ds.GetReadinessWindow(ctx, day, engine.BaselineWindowDays, userID)
	if err != nil {
		return models.ReadinessSnapshot{}, models.ProgressionRule{}, err
	}

	external, err := h.ds.GetExternalReadiness(ctx, day, day.AddDate(0, 0, 1), userID)
	if err != nil {
		return models.ReadinessSnapshot{}, models.ProgressionRule{}, err
	}

	return engine.Snapshot(history, external, day, rule), rule, nil
}

func (h *handlers) getReadiness(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day := models.FloorDay(time.Now())
	if dateStr := req.GetString("date", ""); dateStr != "" {
		parsed, err := models.ParseDay(dateStr)
		if err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
		day = parsed
	}

	snap, _, err := h.snapshotForDay(ctx, day, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_readiness", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(snap)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getAdjustedPlan(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day := models.FloorDay(time.Now())
	if dateStr := req.GetString("date", ""); dateStr != "" {
		parsed, err := models.ParseDay(dateStr)
		if err != nil {
			return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
		}
		day = parsed
	}
	uid := UserIDFromContext(ctx)

	snap, rule, err := h.snapshotForDay(ctx, day, uid)
	if err != nil {
		h.log.Error("mcp get_adjusted_plan readiness", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	rows, err := h.ds.GetPlannedTargets(ctx, uid)
	if err != nil {
		h.log.Error("mcp get_adjusted_plan targets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	targets := make([]models.PlannedExerciseTarget, 0, len(rows))
	for _, row := range rows {
		targets = append(targets, row.Target())
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"readiness": snap,
		"targets":   engine.AdjustTargets(targets, snap, rule.WeightIncrement),
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) evaluateProgression(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	sessionStr, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}
	sessionID, err := uuid.Parse(sessionStr)
	if err != nil {
		return mcp.NewToolResultError("invalid session_id: " + err.Error()), nil
	}

	uid := UserIDFromContext(ctx)

	target, err := h.ds.GetPlannedTarget(ctx, uid, exercise)
	if err != nil {
		h.log.Error("mcp evaluate_progression target", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if target == nil {
		return mcp.NewToolResultError("no stored target for exercise: " + exercise), nil
	}

	sets, err := h.ds.GetSessionSets(ctx, uid, sessionID, exercise)
	if err != nil {
		h.log.Error("mcp evaluate_progression sets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	rule, err := h.ds.GetProgressionRule(ctx, uid)
	if err != nil {
		h.log.Error("mcp evaluate_progression rule", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(engine.Evaluate(target.Target(), sets, rule))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getBiometrics(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	rows, err := h.ds.QueryBiometricDays(ctx, start, end, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_biometrics", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getTargets(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rows, err := h.ds.GetPlannedTargets(ctx, UserIDFromContext(ctx))
	if err != nil {
		h.log.Error("mcp get_targets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getLoggedSets(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, end, err := defaultTimeRange(req.GetString("start", ""), req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	exerciseFilter := req.GetString("exercise", "")
	rows, err := h.ds.QueryLoggedSets(ctx, start, end, UserIDFromContext(ctx), exerciseFilter)
	if err != nil {
		h.log.Error("mcp get_logged_sets", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(rows)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

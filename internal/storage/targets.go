package storage

import (
	"context"
	"fmt"

	"github.com/claude/repcoach/internal/models"
)

// GetPlannedTargets returns all stored exercise targets for a user,
// ordered by exercise name.
func (db *DB) GetPlannedTargets(ctx context.Context, userID int) ([]models.PlannedTargetRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT user_id, exercise, target_weight_kg, rep_low, rep_high, failure_streak, updated_at
		 FROM planned_targets
		 WHERE user_id = $1
		 ORDER BY exercise ASC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("querying planned targets: %w", err)
	}
	defer rows.Close()

	var result []models.PlannedTargetRow
	for rows.Next() {
		var r models.PlannedTargetRow
		if err := rows.Scan(&r.UserID, &r.Exercise, &r.TargetWeight, &r.RepLow, &r.RepHigh, &r.FailureStreak, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning planned target: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// GetPlannedTarget returns the stored target for one exercise, or
// (nil, nil) when none exists.
func (db *DB) GetPlannedTarget(ctx context.Context, userID int, exercise string) (*models.PlannedTargetRow, error) {
	var r models.PlannedTargetRow
	err := db.Pool.QueryRow(ctx,
		`SELECT user_id, exercise, target_weight_kg, rep_low, rep_high, failure_streak, updated_at
		 FROM planned_targets
		 WHERE user_id = $1 AND exercise = $2`,
		userID, exercise).Scan(&r.UserID, &r.Exercise, &r.TargetWeight, &r.RepLow, &r.RepHigh, &r.FailureStreak, &r.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("querying planned target: %w", err)
	}
	return &r, nil
}

// UpsertPlannedTarget stores or replaces one exercise's target.
func (db *DB) UpsertPlannedTarget(ctx context.Context, userID int, t models.PlannedExerciseTarget) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO planned_targets (user_id, exercise, target_weight_kg, rep_low, rep_high, failure_streak, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, now())
		 ON CONFLICT (user_id, exercise) DO UPDATE SET
			target_weight_kg = EXCLUDED.target_weight_kg,
			rep_low = EXCLUDED.rep_low,
			rep_high = EXCLUDED.rep_high,
			failure_streak = EXCLUDED.failure_streak,
			updated_at = now()`,
		userID, t.Exercise, t.TargetWeight, t.RepLow, t.RepHigh, t.FailureStreak)
	if err != nil {
		return fmt.Errorf("upserting planned target: %w", err)
	}
	return nil
}

// ApplyEvaluation persists the engine's next target for an exercise. The
// evaluation result is the authoritative new state: weight, rep range, and
// failure streak all come from it.
func (db *DB) ApplyEvaluation(ctx context.Context, userID int, eval models.ExerciseProgressEvaluation) error {
	return db.UpsertPlannedTarget(ctx, userID, eval.NextTarget)
}

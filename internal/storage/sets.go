package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/repcoach/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// InsertLoggedSets batch-inserts logged set rows. Returns the number
// actually inserted (re-sent sessions are skipped via ON CONFLICT DO NOTHING).
func (db *DB) InsertLoggedSets(ctx context.Context, rows []models.LoggedSetRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO logged_sets (user_id, session_id, session_date, exercise, set_number, weight_kg, reps, is_warmup)
VALUES ` + valuesClause(len(rows), 8) + ` ON CONFLICT DO NOTHING`

	args := make([]any, 0, len(rows)*8)
	for _, r := range rows {
		args = append(args, r.UserID, r.SessionID, r.SessionDate, r.Exercise,
			r.SetNumber, r.WeightKg, r.Reps, r.IsWarmup)
	}

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("inserting logged sets: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryLoggedSets retrieves logged sets in a date range with an optional
// exercise filter (partial, case-insensitive).
func (db *DB) QueryLoggedSets(ctx context.Context, start, end time.Time, userID int, exerciseFilter string) ([]models.LoggedSetRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT user_id, session_id, session_date, exercise, set_number, weight_kg, reps, is_warmup
		 FROM logged_sets
		 WHERE session_date >= $1 AND session_date < $2 AND user_id = $3
		   AND ($4 = '' OR exercise ILIKE '%' || $4 || '%')
		 ORDER BY session_date DESC, exercise ASC, is_warmup DESC, set_number ASC`,
		start, end, userID, exerciseFilter)
	if err != nil {
		return nil, fmt.Errorf("querying logged sets: %w", err)
	}
	defer rows.Close()

	return scanLoggedSetRows(rows)
}

// GetSessionSets returns the working sets one session logged for one
// exercise, the evaluator's input for that occurrence. Warmups are excluded:
// progression is judged on working sets only.
func (db *DB) GetSessionSets(ctx context.Context, userID int, sessionID uuid.UUID, exercise string) ([]models.LoggedSet, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT user_id, session_id, session_date, exercise, set_number, weight_kg, reps, is_warmup
		 FROM logged_sets
		 WHERE user_id = $1 AND session_id = $2 AND exercise = $3 AND NOT is_warmup
		 ORDER BY set_number ASC`,
		userID, sessionID, exercise)
	if err != nil {
		return nil, fmt.Errorf("querying session sets: %w", err)
	}
	defer rows.Close()

	setRows, err := scanLoggedSetRows(rows)
	if err != nil {
		return nil, err
	}

	sets := make([]models.LoggedSet, 0, len(setRows))
	for _, r := range setRows {
		sets = append(sets, r.LoggedSet())
	}
	return sets, nil
}

// GetSessionExercises returns the distinct exercises a session touched.
func (db *DB) GetSessionExercises(ctx context.Context, userID int, sessionID uuid.UUID) ([]string, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT DISTINCT exercise
		 FROM logged_sets
		 WHERE user_id = $1 AND session_id = $2 AND NOT is_warmup
		 ORDER BY exercise ASC`,
		userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying session exercises: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("scanning session exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func scanLoggedSetRows(rows pgx.Rows) ([]models.LoggedSetRow, error) {
	var result []models.LoggedSetRow
	for rows.Next() {
		var r models.LoggedSetRow
		if err := rows.Scan(&r.UserID, &r.SessionID, &r.SessionDate, &r.Exercise,
			&r.SetNumber, &r.WeightKg, &r.Reps, &r.IsWarmup); err != nil {
			return nil, fmt.Errorf("scanning logged set: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

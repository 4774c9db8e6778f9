package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/repcoach/internal/models"
)

// UpsertReadinessScores batch-upserts third-party readiness scores, one per
// (user, day, source). Returns the number of rows written.
func (db *DB) UpsertReadinessScores(ctx context.Context, rows []models.ReadinessScoreRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO readiness_scores (user_id, day, score, source)
VALUES ` + valuesClause(len(rows), 4) + `
ON CONFLICT (user_id, day, source) DO UPDATE SET score = EXCLUDED.score`

	args := make([]any, 0, len(rows)*4)
	for _, r := range rows {
		args = append(args, r.UserID, models.FloorDay(r.Day), r.Score, r.Source)
	}

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("upserting readiness scores: %w", err)
	}
	return tag.RowsAffected(), nil
}

// GetExternalReadiness returns third-party readiness scores in [start, end)
// keyed by day start, the shape the readiness estimator consumes. When a day
// has scores from multiple sources the most recently written one wins.
func (db *DB) GetExternalReadiness(ctx context.Context, start, end time.Time, userID int) (map[time.Time]float64, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT day, score
		 FROM readiness_scores
		 WHERE day >= $1 AND day < $2 AND user_id = $3
		 ORDER BY day ASC, updated_at ASC`,
		models.FloorDay(start), models.FloorDay(end), userID)
	if err != nil {
		return nil, fmt.Errorf("querying readiness scores: %w", err)
	}
	defer rows.Close()

	result := make(map[time.Time]float64)
	for rows.Next() {
		var day time.Time
		var score float64
		if err := rows.Scan(&day, &score); err != nil {
			return nil, fmt.Errorf("scanning readiness score: %w", err)
		}
		result[models.FloorDay(day)] = score
	}
	return result, rows.Err()
}

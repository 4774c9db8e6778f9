package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/claude/repcoach/internal/models"
)

// UpsertBiometricDays batch-upserts biometric day rows, one per (user, day).
// A re-sync for an existing day overwrites it; the wearable is the source of
// truth for its own history. Returns the number of rows written.
func (db *DB) UpsertBiometricDays(ctx context.Context, rows []models.BiometricDayRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	query := `INSERT INTO biometric_days (user_id, day, sleep_hours, resting_hr, hrv, source)
VALUES ` + valuesClause(len(rows), 6) + `
ON CONFLICT (user_id, day) DO UPDATE SET
	sleep_hours = EXCLUDED.sleep_hours,
	resting_hr = EXCLUDED.resting_hr,
	hrv = EXCLUDED.hrv,
	source = EXCLUDED.source`

	args := make([]any, 0, len(rows)*6)
	for _, r := range rows {
		args = append(args, r.UserID, models.FloorDay(r.Day), r.SleepHours, r.RestingHR, r.HRV, r.Source)
	}

	tag, err := db.Pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("upserting biometric days: %w", err)
	}
	return tag.RowsAffected(), nil
}

// QueryBiometricDays retrieves biometric days in [start, end) ordered ascending.
func (db *DB) QueryBiometricDays(ctx context.Context, start, end time.Time, userID int) ([]models.BiometricDayRow, error) {
	rows, err := db.Pool.Query(ctx,
		`SELECT user_id, day, sleep_hours, resting_hr, hrv, source
		 FROM biometric_days
		 WHERE day >= $1 AND day < $2 AND user_id = $3
		 ORDER BY day ASC`,
		models.FloorDay(start), models.FloorDay(end), userID)
	if err != nil {
		return nil, fmt.Errorf("querying biometric days: %w", err)
	}
	defer rows.Close()

	var result []models.BiometricDayRow
	for rows.Next() {
		var r models.BiometricDayRow
		if err := rows.Scan(&r.UserID, &r.Day, &r.SleepHours, &r.RestingHR, &r.HRV, &r.Source); err != nil {
			return nil, fmt.Errorf("scanning biometric day: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// GetReadinessWindow returns the biometric history the readiness model
// needs for a day: the trailing baseline window plus the day itself.
func (db *DB) GetReadinessWindow(ctx context.Context, day time.Time, lookbackDays, userID int) ([]models.BiometricDay, error) {
	day = models.FloorDay(day)
	rows, err := db.QueryBiometricDays(ctx, day.AddDate(0, 0, -lookbackDays), day.AddDate(0, 0, 1), userID)
	if err != nil {
		return nil, err
	}

	history := make([]models.BiometricDay, 0, len(rows))
	for _, r := range rows {
		history = append(history, r.BiometricDay())
	}
	return history, nil
}

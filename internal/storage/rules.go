package storage

import (
	"context"
	"fmt"

	"github.com/claude/repcoach/internal/models"
)

// GetProgressionRule returns the user's progression rule, falling back to
// the default rule when none is stored.
func (db *DB) GetProgressionRule(ctx context.Context, userID int) (models.ProgressionRule, error) {
	var lowMult, neutralMult, highMult, deloadPct, increment float64
	var missThreshold int

	err := db.Pool.QueryRow(ctx,
		`SELECT low_multiplier, neutral_multiplier, high_multiplier,
		        miss_threshold, deload_percent, weight_increment_kg
		 FROM progression_rules
		 WHERE user_id = $1`,
		userID).Scan(&lowMult, &neutralMult, &highMult, &missThreshold, &deloadPct, &increment)
	if err != nil {
		if isNoRows(err) {
			return models.DefaultRule(), nil
		}
		return models.ProgressionRule{}, fmt.Errorf("querying progression rule: %w", err)
	}

	return models.ProgressionRule{
		Multipliers: map[models.ReadinessBand]float64{
			models.BandLow:     lowMult,
			models.BandNeutral: neutralMult,
			models.BandHigh:    highMult,
		},
		MissThreshold:   missThreshold,
		DeloadPercent:   deloadPct,
		WeightIncrement: increment,
	}, nil
}

// UpsertProgressionRule stores the user's progression rule. Unconfigured
// band multipliers persist as the neutral 1.0 so the stored row stays total.
func (db *DB) UpsertProgressionRule(ctx context.Context, userID int, rule models.ProgressionRule) error {
	_, err := db.Pool.Exec(ctx,
		`INSERT INTO progression_rules (user_id, low_multiplier, neutral_multiplier, high_multiplier,
		                                miss_threshold, deload_percent, weight_increment_kg)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id) DO UPDATE SET
			low_multiplier = EXCLUDED.low_multiplier,
			neutral_multiplier = EXCLUDED.neutral_multiplier,
			high_multiplier = EXCLUDED.high_multiplier,
			miss_threshold = EXCLUDED.miss_threshold,
			deload_percent = EXCLUDED.deload_percent,
			weight_increment_kg = EXCLUDED.weight_increment_kg`,
		userID,
		rule.Multiplier(models.BandLow),
		rule.Multiplier(models.BandNeutral),
		rule.Multiplier(models.BandHigh),
		rule.MissThreshold, rule.DeloadPercent, rule.WeightIncrement)
	if err != nil {
		return fmt.Errorf("upserting progression rule: %w", err)
	}
	return nil
}

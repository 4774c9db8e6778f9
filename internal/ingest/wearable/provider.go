package wearable

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/claude/repcoach/internal/ingest"
	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/storage"
)

// Provider processes wearable sync payloads: per-day biometric readings
// plus optional vendor readiness scores.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new wearable ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest stores a wearable payload. Days without any biometric reading and
// without a readiness score are counted but skipped.
func (p *Provider) Ingest(ctx context.Context, payload *models.WearablePayload, userID int) (*ingest.Result, error) {
	result := &ingest.Result{}

	bioRows, scoreRows := Convert(payload, userID)
	result.DaysReceived = len(payload.Days)

	if len(bioRows) > 0 {
		upserted, err := p.db.UpsertBiometricDays(ctx, bioRows)
		if err != nil {
			return result, fmt.Errorf("upserting biometric days: %w", err)
		}
		result.DaysUpserted = upserted
	}

	if len(scoreRows) > 0 {
		upserted, err := p.db.UpsertReadinessScores(ctx, scoreRows)
		if err != nil {
			return result, fmt.Errorf("upserting readiness scores: %w", err)
		}
		result.ScoresUpserted = upserted
	}

	p.log.Info("wearable ingest",
		"days_received", result.DaysReceived,
		"days_upserted", result.DaysUpserted,
		"scores_upserted", result.ScoresUpserted,
	)
	return result, nil
}

// Convert splits a wearable payload into biometric day rows and readiness
// score rows, flooring every day stamp. Empty samples are dropped.
func Convert(payload *models.WearablePayload, userID int) ([]models.BiometricDayRow, []models.ReadinessScoreRow) {
	var bioRows []models.BiometricDayRow
	var scoreRows []models.ReadinessScoreRow

	for _, d := range payload.Days {
		day := models.FloorDay(d.Day.Time)

		if d.SleepHours != nil || d.RestingHR != nil || d.HRV != nil {
			bioRows = append(bioRows, models.BiometricDayRow{
				UserID:     userID,
				Day:        day,
				SleepHours: d.SleepHours,
				RestingHR:  d.RestingHR,
				HRV:        d.HRV,
				Source:     d.Source,
			})
		}

		if d.Readiness != nil {
			scoreRows = append(scoreRows, models.ReadinessScoreRow{
				UserID: userID,
				Day:    day,
				Score:  *d.Readiness,
				Source: d.Source,
			})
		}
	}

	return bioRows, scoreRows
}

package setlog

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/claude/repcoach/internal/ingest"
	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/storage"
	"github.com/google/uuid"
)

// Provider processes strength-log CSV exports into logged set rows.
type Provider struct {
	db  *storage.DB
	log *slog.Logger
}

// NewProvider creates a new set-log ingest provider.
func NewProvider(db *storage.DB, log *slog.Logger) *Provider {
	return &Provider{db: db, log: log}
}

// Ingest parses a strength-log export and stores its sets. Each session
// gets a fresh session ID; re-sent sessions dedupe at the database level.
func (p *Provider) Ingest(ctx context.Context, r io.Reader, userID int) (*ingest.Result, error) {
	sessions, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing set log: %w", err)
	}

	result := &ingest.Result{SessionsReceived: len(sessions)}

	rows := Flatten(sessions, userID)
	result.SetsReceived = len(rows)

	if len(rows) > 0 {
		inserted, err := p.db.InsertLoggedSets(ctx, rows)
		if err != nil {
			return result, fmt.Errorf("inserting logged sets: %w", err)
		}
		result.SetsInserted = inserted
		result.SetsSkipped = int64(len(rows)) - inserted
	}

	p.log.Info("set log ingest",
		"sessions", result.SessionsReceived,
		"sets_received", result.SetsReceived,
		"sets_inserted", result.SetsInserted,
		"sets_skipped", result.SetsSkipped,
	)
	return result, nil
}

// Flatten turns parsed sessions into insertable rows, assigning one
// session ID per session and flooring session dates to their day.
func Flatten(sessions []models.SetLogSession, userID int) []models.LoggedSetRow {
	var rows []models.LoggedSetRow
	for _, s := range sessions {
		sessionID := uuid.New()
		day := models.FloorDay(s.Date)
		for _, ex := range s.Exercises {
			for _, set := range ex.Sets {
				rows = append(rows, models.LoggedSetRow{
					UserID:      userID,
					SessionID:   sessionID,
					SessionDate: day,
					Exercise:    exerciseKey(ex),
					SetNumber:   set.Number,
					WeightKg:    set.WeightKg,
					Reps:        set.Reps,
					IsWarmup:    set.IsWarmup,
				})
			}
		}
	}
	return rows
}

// exerciseKey builds the stored exercise name, folding equipment into it
// so "Bench Press (Barbell)" and "Bench Press (Dumbbell)" progress apart.
func exerciseKey(ex models.SetLogExercise) string {
	if ex.Equipment == "" {
		return ex.Name
	}
	return fmt.Sprintf("%s (%s)", ex.Name, ex.Equipment)
}

package mcp

import (
	"context"
	"time"

	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/storage"
	"github.com/google/uuid"
)

// DataSource abstracts the data layer for MCP tools, keeping the handlers
// testable without a live database.
type DataSource interface {
	GetProgressionRule(ctx context.Context, userID int) (models.ProgressionRule, error)
	GetReadinessWindow(ctx context.Context, day time.Time, lookbackDays, userID int) ([]models.BiometricDay, error)
	GetExternalReadiness(ctx context.Context, start, end time.Time, userID int) (map[time.Time]float64, error)
	GetPlannedTargets(ctx context.Context, userID int) ([]models.PlannedTargetRow, error)
	GetPlannedTarget(ctx context.Context, userID int, exercise string) (*models.PlannedTargetRow, error)
	GetSessionSets(ctx context.Context, userID int, sessionID uuid.UUID, exercise string) ([]models.LoggedSet, error)
	QueryBiometricDays(ctx context.Context, start, end time.Time, userID int) ([]models.BiometricDayRow, error)
	QueryLoggedSets(ctx context.Context, start, end time.Time, userID int, exerciseFilter string) ([]models.LoggedSetRow, error)
}

// Compile-time check: *storage.DB satisfies DataSource.
var _ DataSource = (*storage.DB)(nil)

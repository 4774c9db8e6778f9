package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/claude/repcoach/internal/ingest/wearable"
	"github.com/claude/repcoach/internal/models"
	"github.com/claude/repcoach/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	DaysUpserted   int64
	ScoresUpserted int64
}

// Importer reads per-day wearable export JSON files from a directory tree
// and upserts their biometric data into the DB.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer. A nil state DB disables the already-imported
// check; every file is processed.
func New(db *storage.DB, state *StateDB, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{db: db, state: state, log: log, dryRun: dryRun}
}

// Import processes all .json files under the given export directory.
func (imp *Importer) Import(ctx context.Context, exportDir string) (*Stats, error) {
	err := filepath.WalkDir(exportDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".json") {
			return nil
		}
		return imp.importFile(ctx, exportDir, path)
	})
	if err != nil {
		return &imp.stats, fmt.Errorf("walking %s: %w", exportDir, err)
	}
	return &imp.stats, nil
}

// importFile processes one export file, consulting the state DB first.
func (imp *Importer) importFile(ctx context.Context, exportDir, path string) error {
	relPath, err := filepath.Rel(exportDir, path)
	if err != nil {
		relPath = path
	}

	info, err := os.Stat(path)
	if err != nil {
		imp.log.Warn("stat failed", "file", relPath, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	var hash string
	if imp.state != nil {
		hash, err = HashFile(path)
		if err != nil {
			imp.log.Warn("hash failed", "file", relPath, "error", err)
			imp.stats.FilesErrored++
			return nil
		}

		done, err := imp.state.IsImported(relPath, info.Size(), hash)
		if err != nil {
			return fmt.Errorf("checking import state for %s: %w", relPath, err)
		}
		if done {
			imp.stats.FilesSkipped++
			return nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		imp.log.Warn("read failed", "file", relPath, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	var payload models.WearablePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		imp.log.Warn("parse failed", "file", relPath, "error", err)
		imp.stats.FilesErrored++
		return nil
	}

	bioRows, scoreRows := wearable.Convert(&payload, 1)
	if len(bioRows) == 0 && len(scoreRows) == 0 {
		imp.stats.FilesSkipped++
		return nil
	}

	imp.stats.FilesProcessed++
	if imp.dryRun {
		imp.stats.DaysUpserted += int64(len(bioRows))
		imp.stats.ScoresUpserted += int64(len(scoreRows))
		return nil
	}

	upserted, err := imp.batchUpsertDays(ctx, bioRows)
	if err != nil {
		return fmt.Errorf("upserting biometric days from %s: %w", relPath, err)
	}
	imp.stats.DaysUpserted += upserted

	scores, err := imp.batchUpsertScores(ctx, scoreRows)
	if err != nil {
		return fmt.Errorf("upserting readiness scores from %s: %w", relPath, err)
	}
	imp.stats.ScoresUpserted += scores

	if imp.state != nil {
		if err := imp.state.MarkImported(relPath, info.Size(), hash); err != nil {
			return fmt.Errorf("marking %s imported: %w", relPath, err)
		}
	}
	return nil
}

// batchUpsertDays upserts biometric days in batches to stay within
// PostgreSQL parameter limits. 6 params per row, max 65535 params. Use 5000.
func (imp *Importer) batchUpsertDays(ctx context.Context, rows []models.BiometricDayRow) (int64, error) {
	const batchSize = 5000
	var total int64

	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		upserted, err := imp.db.UpsertBiometricDays(ctx, rows[i:end])
		if err != nil {
			return total, err
		}
		total += upserted
	}
	return total, nil
}

// batchUpsertScores upserts readiness scores in batches (4 params per row).
func (imp *Importer) batchUpsertScores(ctx context.Context, rows []models.ReadinessScoreRow) (int64, error) {
	const batchSize = 10000
	var total int64

	for i := 0; i < len(rows); i += batchSize {
		end := i + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		upserted, err := imp.db.UpsertReadinessScores(ctx, rows[i:end])
		if err != nil {
			return total, err
		}
		total += upserted
	}
	return total, nil
}

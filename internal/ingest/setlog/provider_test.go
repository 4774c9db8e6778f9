package setlog

import (
	"testing"
	"time"

	"github.com/claude/repcoach/internal/models"
)

// TestFlatten verifies row shaping: one session ID per session, floored
// session dates, equipment folded into the exercise key.
func TestFlatten(t *testing.T) {
	sessions := []models.SetLogSession{
		{
			Name: "Push Day A",
			Date: time.Date(2026, 3, 10, 18, 12, 0, 0, time.UTC),
			Exercises: []models.SetLogExercise{
				{Name: "Bench Press", Equipment: "Barbell", Sets: []models.SetLogSet{
					{Number: 1, WeightKg: 60, Reps: 10, IsWarmup: true},
					{Number: 1, WeightKg: 82.5, Reps: 8},
				}},
				{Name: "Pull-up", Sets: []models.SetLogSet{
					{Number: 1, WeightKg: 20, Reps: 10, AddedWeight: true},
				}},
			},
		},
		{
			Name: "Pull Day",
			Date: time.Date(2026, 3, 12, 7, 45, 0, 0, time.UTC),
			Exercises: []models.SetLogExercise{
				{Name: "Row", Equipment: "Cable", Sets: []models.SetLogSet{
					{Number: 1, WeightKg: 50, Reps: 12},
				}},
			},
		},
	}

	rows := Flatten(sessions, 1)
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}

	if rows[0].SessionID != rows[2].SessionID {
		t.Error("sets within one session should share a session ID")
	}
	if rows[0].SessionID == rows[3].SessionID {
		t.Error("distinct sessions should get distinct session IDs")
	}

	wantDay := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !rows[0].SessionDate.Equal(wantDay) {
		t.Errorf("session date = %v, want %v", rows[0].SessionDate, wantDay)
	}

	if rows[0].Exercise != "Bench Press (Barbell)" {
		t.Errorf("exercise key = %q, want %q", rows[0].Exercise, "Bench Press (Barbell)")
	}
	if rows[2].Exercise != "Pull-up" {
		t.Errorf("exercise key = %q, want %q", rows[2].Exercise, "Pull-up")
	}

	if !rows[0].IsWarmup || rows[1].IsWarmup {
		t.Error("warmup flag not carried through")
	}
}

package wearable

import (
	"testing"
	"time"

	"github.com/claude/repcoach/internal/models"
)

func f(v float64) *float64 { return &v }

func day(s string) models.DayStamp {
	t, _ := time.Parse("2006-01-02", s)
	return models.DayStamp{Time: t}
}

// TestConvert verifies payload splitting: biometric readings and readiness
// scores go to their own row sets, empty samples are dropped.
func TestConvert(t *testing.T) {
	payload := &models.WearablePayload{
		Days: []models.WearableDaySample{
			{Day: day("2026-03-08"), SleepHours: f(7.5), RestingHR: f(52), HRV: f(68), Source: "oura"},
			{Day: day("2026-03-09"), Readiness: f(82), Source: "oura"},
			{Day: day("2026-03-10"), SleepHours: f(6.2), Readiness: f(61), Source: "oura"},
			{Day: day("2026-03-11"), Source: "oura"}, // empty, dropped
		},
	}

	bio, scores := Convert(payload, 1)

	if len(bio) != 2 {
		t.Fatalf("biometric rows = %d, want 2", len(bio))
	}
	if len(scores) != 2 {
		t.Fatalf("score rows = %d, want 2", len(scores))
	}

	if bio[0].SleepHours == nil || *bio[0].SleepHours != 7.5 {
		t.Errorf("first bio row sleep = %v, want 7.5", bio[0].SleepHours)
	}
	if bio[1].RestingHR != nil {
		t.Errorf("second bio row resting HR = %v, want nil", bio[1].RestingHR)
	}
	if scores[0].Score != 82 || scores[1].Score != 61 {
		t.Errorf("scores = %.0f, %.0f, want 82, 61", scores[0].Score, scores[1].Score)
	}
	for _, r := range bio {
		if r.UserID != 1 {
			t.Errorf("user id = %d, want 1", r.UserID)
		}
		if !r.Day.Equal(models.FloorDay(r.Day)) {
			t.Errorf("day %v not floored", r.Day)
		}
	}
}

// TestConvertTimestampFlooring verifies a full timestamp in the day field
// still lands on the day start.
func TestConvertTimestampFlooring(t *testing.T) {
	stamp := models.DayStamp{Time: time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)}
	payload := &models.WearablePayload{
		Days: []models.WearableDaySample{{Day: stamp, HRV: f(70)}},
	}

	bio, _ := Convert(payload, 1)
	if len(bio) != 1 {
		t.Fatal("expected one row")
	}
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !bio[0].Day.Equal(want) {
		t.Errorf("day = %v, want %v", bio[0].Day, want)
	}
}

package engine

import (
	"math"
	"testing"
	"time"

	"github.com/claude/repcoach/internal/models"
)

var testDay = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func f(v float64) *float64 { return &v }

func testRule() models.ProgressionRule {
	return models.ProgressionRule{
		Multipliers: map[models.ReadinessBand]float64{
			models.BandLow:     0.9,
			models.BandNeutral: 1.0,
			models.BandHigh:    1.05,
		},
		MissThreshold:   3,
		DeloadPercent:   0.1,
		WeightIncrement: 2.5,
	}
}

// TestSnapshotThirdParty verifies the vendor-score path: fixed band
// thresholds, clamping to [0,100], and no biometric deltas.
func TestSnapshotThirdParty(t *testing.T) {
	tests := []struct {
		name      string
		score     float64
		wantScore float64
		wantBand  models.ReadinessBand
	}{
		{"low", 55, 55, models.BandLow},
		{"just below neutral", 69.9, 69.9, models.BandLow},
		{"neutral floor", 70, 70, models.BandNeutral},
		{"neutral ceiling", 84.9, 84.9, models.BandNeutral},
		{"high floor", 85, 85, models.BandHigh},
		{"clamped above", 130, 100, models.BandHigh},
		{"clamped below", -20, 0, models.BandLow},
	}

	// History that would score high on the biometric path: the external
	// score must still win.
	history := []models.BiometricDay{
		{Day: testDay.AddDate(0, 0, -1), SleepHours: f(6)},
		{Day: testDay, SleepHours: f(9)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			external := map[time.Time]float64{testDay: tt.score}
			snap := Snapshot(history, external, testDay, testRule())

			if snap.Score != tt.wantScore {
				t.Errorf("score = %.1f, want %.1f", snap.Score, tt.wantScore)
			}
			if snap.Band != tt.wantBand {
				t.Errorf("band = %q, want %q", snap.Band, tt.wantBand)
			}
			if snap.Source != models.SourceThirdParty {
				t.Errorf("source = %q, want %q", snap.Source, models.SourceThirdParty)
			}
			if snap.SleepDelta != nil || snap.RestingHRDelta != nil || snap.HRVDelta != nil {
				t.Error("third-party path must not carry biometric deltas")
			}
			if snap.Multiplier != testRule().Multiplier(tt.wantBand) {
				t.Errorf("multiplier = %.3f, want %.3f", snap.Multiplier, testRule().Multiplier(tt.wantBand))
			}
		})
	}
}

// TestSnapshotExternalKeyFlooring verifies external scores keyed by raw
// timestamps still match the floored day.
func TestSnapshotExternalKeyFlooring(t *testing.T) {
	external := map[time.Time]float64{
		time.Date(2026, 3, 10, 7, 31, 0, 0, time.UTC): 90,
	}
	snap := Snapshot(nil, external, testDay.Add(22*time.Hour), testRule())
	if snap.Source != models.SourceThirdParty {
		t.Fatalf("source = %q, want third_party", snap.Source)
	}
	if snap.Score != 90 {
		t.Errorf("score = %.1f, want 90", snap.Score)
	}
}

// TestSnapshotNoHistory verifies the neutral default: with no baseline the
// score is exactly 50 regardless of the day's own readings.
func TestSnapshotNoHistory(t *testing.T) {
	tests := []struct {
		name    string
		history []models.BiometricDay
	}{
		{"empty history", nil},
		{"only today's entry", []models.BiometricDay{
			{Day: testDay, SleepHours: f(9.5), RestingHR: f(45), HRV: f(120)},
		}},
		{"history outside window", []models.BiometricDay{
			{Day: testDay.AddDate(0, 0, -15), SleepHours: f(8)},
			{Day: testDay, SleepHours: f(9.5)},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Snapshot(tt.history, nil, testDay, testRule())
			if snap.Score != 50.0 {
				t.Errorf("score = %.2f, want exactly 50.0", snap.Score)
			}
			if snap.Band != models.BandNeutral {
				t.Errorf("band = %q, want neutral", snap.Band)
			}
			if snap.Source != models.SourceBiometricModel {
				t.Errorf("source = %q, want biometric_model", snap.Source)
			}
		})
	}
}

// TestSnapshotBaselineWindow verifies the half-open [day-14, day) window:
// day-14 is in, day-15 and the day itself are out.
func TestSnapshotBaselineWindow(t *testing.T) {
	history := []models.BiometricDay{
		{Day: testDay.AddDate(0, 0, -15), SleepHours: f(2)},  // out
		{Day: testDay.AddDate(0, 0, -14), SleepHours: f(8)},  // in
		{Day: testDay.AddDate(0, 0, -1), SleepHours: f(8)},   // in
		{Day: testDay, SleepHours: f(7)},                     // today, not baseline
	}

	snap := Snapshot(history, nil, testDay, testRule())

	// Baseline is mean(8, 8) = 8; delta = -1; component = 50 - 15 = 35.
	if snap.SleepDelta == nil {
		t.Fatal("expected sleep delta")
	}
	if math.Abs(*snap.SleepDelta-(-1)) > 1e-9 {
		t.Errorf("sleep delta = %.3f, want -1", *snap.SleepDelta)
	}
	if math.Abs(snap.Score-35) > 1e-9 {
		t.Errorf("score = %.3f, want 35", snap.Score)
	}
	// 35 is not strictly below the low cutoff.
	if snap.Band != models.BandNeutral {
		t.Errorf("band = %q, want neutral", snap.Band)
	}
}

// TestSnapshotRestingHRInverted verifies that an elevated resting heart
// rate lowers the score and the stored delta is baseline-minus-current.
func TestSnapshotRestingHRInverted(t *testing.T) {
	history := []models.BiometricDay{
		{Day: testDay.AddDate(0, 0, -3), RestingHR: f(60)},
		{Day: testDay.AddDate(0, 0, -2), RestingHR: f(60)},
		{Day: testDay, RestingHR: f(65)},
	}

	snap := Snapshot(history, nil, testDay, testRule())

	if snap.RestingHRDelta == nil {
		t.Fatal("expected resting HR delta")
	}
	if math.Abs(*snap.RestingHRDelta-(-5)) > 1e-9 {
		t.Errorf("resting HR delta = %.2f, want -5", *snap.RestingHRDelta)
	}
	// Component = 50 + 10*(-5) = 0, clamped at 0; it is the only component.
	if snap.Score != 0 {
		t.Errorf("score = %.2f, want 0", snap.Score)
	}
	if snap.Band != models.BandLow {
		t.Errorf("band = %q, want low", snap.Band)
	}
}

// TestSnapshotCompositeMean verifies averaging across the computable
// components and skipping metrics without both sides.
func TestSnapshotCompositeMean(t *testing.T) {
	history := []models.BiometricDay{
		{Day: testDay.AddDate(0, 0, -5), SleepHours: f(7), HRV: f(50)},
		{Day: testDay.AddDate(0, 0, -4), SleepHours: f(7), HRV: f(50)},
		// Today has sleep and HRV but no resting HR; RHR contributes nothing.
		{Day: testDay, SleepHours: f(8), HRV: f(55)},
	}

	snap := Snapshot(history, nil, testDay, testRule())

	// Sleep: delta +1 → 65. HRV: delta +5 → 70. Mean = 67.5.
	if math.Abs(snap.Score-67.5) > 1e-9 {
		t.Errorf("score = %.3f, want 67.5", snap.Score)
	}
	if snap.Band != models.BandNeutral {
		t.Errorf("band = %q, want neutral (70 is not strictly above the cutoff)", snap.Band)
	}
	if snap.RestingHRDelta != nil {
		t.Error("resting HR delta should be absent without both sides")
	}
}

// TestSnapshotHighBand verifies a strongly positive deviation lands High.
func TestSnapshotHighBand(t *testing.T) {
	history := []models.BiometricDay{
		{Day: testDay.AddDate(0, 0, -2), SleepHours: f(6)},
		{Day: testDay, SleepHours: f(8)},
	}

	snap := Snapshot(history, nil, testDay, testRule())

	// Delta +2 → component 80 → High.
	if snap.Band != models.BandHigh {
		t.Errorf("band = %q, want high (score %.1f)", snap.Band, snap.Score)
	}
	if snap.Multiplier != 1.05 {
		t.Errorf("multiplier = %.3f, want 1.05", snap.Multiplier)
	}
}

// TestRuleMultiplierTotal verifies the lookup is total over unconfigured bands.
func TestRuleMultiplierTotal(t *testing.T) {
	rule := models.ProgressionRule{}
	for _, band := range []models.ReadinessBand{models.BandLow, models.BandNeutral, models.BandHigh} {
		if m := rule.Multiplier(band); m != 1.0 {
			t.Errorf("Multiplier(%q) = %.2f on empty rule, want 1.0", band, m)
		}
	}
}

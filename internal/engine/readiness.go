// Package engine implements the training autoregulation core: daily
// readiness estimation from biometric history, readiness-scaled plan
// adjustment, and advance/hold/deload progression evaluation.
//
// Every function here is total and pure: no I/O, no internal state, defined
// for all inputs including empty histories and degenerate configuration.
// Callers own the mutable program state and persist what these functions
// return.
package engine

import (
	"time"

	"github.com/claude/repcoach/internal/models"
)

// BaselineWindowDays is the trailing window used to establish each metric's
// baseline, a half-open interval [day-14, day) that never includes the day
// being scored. Exported so callers can size their history queries to it.
const BaselineWindowDays = 14

// Third-party readiness scores arrive on the vendor's own 0-100 scale, so
// their band thresholds differ from the biometric model's, which is centered
// around 50 by construction. The asymmetry is intentional; do not unify.
const (
	thirdPartyLowBelow    = 70.0
	thirdPartyHighAtLeast = 85.0

	biometricLowBelow  = 35.0
	biometricHighAbove = 70.0
)

// Component slopes: roughly ±1 unit of deviation from baseline moves the
// component score by this many points.
const (
	sleepSlope     = 15.0
	restingHRSlope = 10.0
	hrvSlope       = 4.0
)

// Snapshot computes the readiness snapshot for a day. A third-party score
// for that day wins over the biometric model; with no usable data at all
// the result is a neutral 50.0. Never fails.
func Snapshot(history []models.BiometricDay, external map[time.Time]float64, day time.Time, rule models.ProgressionRule) models.ReadinessSnapshot {
	day = models.FloorDay(day)

	if score, ok := lookupExternal(external, day); ok {
		score = clamp(score, 0, 100)
		band := thirdPartyBand(score)
		return models.ReadinessSnapshot{
			Day:        day,
			Score:      score,
			Band:       band,
			Multiplier: rule.Multiplier(band),
			Source:     models.SourceThirdParty,
		}
	}

	today, base := splitHistory(history, day)

	var components []float64
	snap := models.ReadinessSnapshot{
		Day:    day,
		Source: models.SourceBiometricModel,
	}

	if today != nil {
		if d, ok := delta(today.SleepHours, base.sleep); ok {
			snap.SleepDelta = &d
			components = append(components, clamp(50+sleepSlope*d, 0, 100))
		}
		if d, ok := delta(today.RestingHR, base.restingHR); ok {
			// Lower resting HR is better: invert the delta.
			d = -d
			snap.RestingHRDelta = &d
			components = append(components, clamp(50+restingHRSlope*d, 0, 100))
		}
		if d, ok := delta(today.HRV, base.hrv); ok {
			snap.HRVDelta = &d
			components = append(components, clamp(50+hrvSlope*d, 0, 100))
		}
	}

	snap.Score = 50.0
	if len(components) > 0 {
		var sum float64
		for _, c := range components {
			sum += c
		}
		snap.Score = sum / float64(len(components))
	}

	snap.Band = biometricBand(snap.Score)
	snap.Multiplier = rule.Multiplier(snap.Band)
	return snap
}

// lookupExternal finds a third-party score for the day, flooring map keys
// so callers may key by raw timestamps.
func lookupExternal(external map[time.Time]float64, day time.Time) (float64, bool) {
	if external == nil {
		return 0, false
	}
	if score, ok := external[day]; ok {
		return score, true
	}
	for t, score := range external {
		if models.FloorDay(t).Equal(day) {
			return score, true
		}
	}
	return 0, false
}

// baselines holds each metric's trailing mean, nil when no entry in the
// window supplied that metric.
type baselines struct {
	sleep     *float64
	restingHR *float64
	hrv       *float64
}

// splitHistory picks out the day's own entry and computes per-metric means
// over the half-open window [day-14, day).
func splitHistory(history []models.BiometricDay, day time.Time) (*models.BiometricDay, baselines) {
	windowStart := day.AddDate(0, 0, -BaselineWindowDays)

	var today *models.BiometricDay
	var sleepSum, rhrSum, hrvSum float64
	var sleepN, rhrN, hrvN int

	for i := range history {
		d := models.FloorDay(history[i].Day)
		if d.Equal(day) {
			today = &history[i]
			continue
		}
		if d.Before(windowStart) || !d.Before(day) {
			continue
		}
		if v := history[i].SleepHours; v != nil {
			sleepSum += *v
			sleepN++
		}
		if v := history[i].RestingHR; v != nil {
			rhrSum += *v
			rhrN++
		}
		if v := history[i].HRV; v != nil {
			hrvSum += *v
			hrvN++
		}
	}

	var b baselines
	if sleepN > 0 {
		m := sleepSum / float64(sleepN)
		b.sleep = &m
	}
	if rhrN > 0 {
		m := rhrSum / float64(rhrN)
		b.restingHR = &m
	}
	if hrvN > 0 {
		m := hrvSum / float64(hrvN)
		b.hrv = &m
	}
	return today, b
}

// delta returns current - baseline when both exist.
func delta(current, baseline *float64) (float64, bool) {
	if current == nil || baseline == nil {
		return 0, false
	}
	return *current - *baseline, true
}

func thirdPartyBand(score float64) models.ReadinessBand {
	switch {
	case score < thirdPartyLowBelow:
		return models.BandLow
	case score >= thirdPartyHighAtLeast:
		return models.BandHigh
	default:
		return models.BandNeutral
	}
}

func biometricBand(score float64) models.ReadinessBand {
	switch {
	case score < biometricLowBelow:
		return models.BandLow
	case score > biometricHighAbove:
		return models.BandHigh
	default:
		return models.BandNeutral
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

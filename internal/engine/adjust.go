package engine

import (
	"math"

	"github.com/claude/repcoach/internal/models"
)

// AdjustTargets scales each weighted target by the snapshot's multiplier,
// rounding to the given increment. Bodyweight/cardio targets (nil or
// non-positive weight) pass through untouched, as does every other field.
func AdjustTargets(targets []models.PlannedExerciseTarget, readiness models.ReadinessSnapshot, roundingIncrement float64) []models.PlannedExerciseTarget {
	out := make([]models.PlannedExerciseTarget, len(targets))
	for i, t := range targets {
		out[i] = t
		if t.TargetWeight == nil || *t.TargetWeight <= 0 {
			continue
		}
		w := RoundToIncrement(*t.TargetWeight*readiness.Multiplier, roundingIncrement)
		out[i].TargetWeight = &w
	}
	return out
}

// RoundToIncrement rounds value to the nearest multiple of increment,
// half away from zero. A non-positive increment makes this the identity,
// guarding against misconfiguration instead of dividing by zero.
func RoundToIncrement(value, increment float64) float64 {
	if increment <= 0 {
		return value
	}
	return math.Round(value/increment) * increment
}

package engine

import "github.com/claude/repcoach/internal/models"

// Weight tolerances for scoring the top set against the planned weight:
// within 1.5% below plan still counts as hitting the weight (plate and
// rounding slack); more than 3% below plan counts as under-loaded.
const (
	hitWeightTolerance   = 0.985
	underLoadedTolerance = 0.97
)

// Evaluate scores one exercise occurrence against its plan and returns the
// next target. Success (top set at weight and the top of the rep range)
// advances the weight by one increment and clears the streak. A miss (reps
// below the range or weight under-loaded) bumps the streak and deloads once
// it reaches the rule's threshold. A top set at full weight that lands
// inside the rep range is a deliberate hold: target and streak come back
// unchanged with WasSuccessful false, indefinitely — such a lifter never
// accumulates strikes and never deloads. Flagged with product as possibly
// unintended, but the behavior is load-bearing for existing programs.
//
// Total over all inputs: empty set lists, inverted rep ranges, and
// degenerate rules all map to defined outputs.
func Evaluate(planned models.PlannedExerciseTarget, completedSets []models.LoggedSet, rule models.ProgressionRule) models.ExerciseProgressEvaluation {
	// Bodyweight/cardio: weight-based progression never applies.
	if planned.TargetWeight == nil || *planned.TargetWeight <= 0 {
		return models.ExerciseProgressEvaluation{NextTarget: planned, WasSuccessful: true}
	}

	w := *planned.TargetWeight
	next := planned

	top, ok := topSet(completedSets)
	if !ok {
		// Nothing logged counts as a full miss.
		return models.ExerciseProgressEvaluation{NextTarget: recordMiss(next, w, rule), WasSuccessful: false}
	}

	hitWeight := top.WeightKg >= w*hitWeightTolerance
	hitReps := top.Reps >= planned.RepHigh
	failedReps := top.Reps < planned.RepLow
	underLoaded := top.WeightKg < w*underLoadedTolerance

	switch {
	case hitWeight && hitReps:
		advanced := RoundToIncrement(w+rule.WeightIncrement, rule.WeightIncrement)
		next.TargetWeight = &advanced
		next.FailureStreak = 0
		return models.ExerciseProgressEvaluation{NextTarget: next, WasSuccessful: true}
	case failedReps || underLoaded:
		return models.ExerciseProgressEvaluation{NextTarget: recordMiss(next, w, rule), WasSuccessful: false}
	default:
		// Hold: weight within tolerance, reps inside the band.
		return models.ExerciseProgressEvaluation{NextTarget: next, WasSuccessful: false}
	}
}

// topSet selects the representative set: heaviest weight, then most reps.
func topSet(sets []models.LoggedSet) (models.LoggedSet, bool) {
	if len(sets) == 0 {
		return models.LoggedSet{}, false
	}
	top := sets[0]
	for _, s := range sets[1:] {
		if s.WeightKg > top.WeightKg || (s.WeightKg == top.WeightKg && s.Reps > top.Reps) {
			top = s
		}
	}
	return top, true
}

// recordMiss bumps the failure streak and fires a deload once it reaches
// the threshold, cutting the planned weight and clearing the streak.
func recordMiss(t models.PlannedExerciseTarget, plannedWeight float64, rule models.ProgressionRule) models.PlannedExerciseTarget {
	t.FailureStreak++
	if t.FailureStreak >= rule.MissThreshold {
		deloaded := RoundToIncrement(plannedWeight*(1-rule.DeloadPercent), rule.WeightIncrement)
		t.TargetWeight = &deloaded
		t.FailureStreak = 0
	}
	return t
}

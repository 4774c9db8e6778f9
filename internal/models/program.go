package models

// ProgressionRule is the caller-owned configuration governing readiness
// multipliers, miss tolerance, deload size, and the weight step.
type ProgressionRule struct {
	// Multipliers maps each readiness band to a load multiplier.
	Multipliers map[ReadinessBand]float64 `json:"multipliers"`
	// MissThreshold is the count of consecutive non-successes before a
	// deload fires. Values below 1 make deloads fire immediately; the
	// engine treats that as legal configuration, not an error.
	MissThreshold int `json:"miss_threshold"`
	// DeloadPercent is the fractional weight cut on deload, e.g. 0.1.
	DeloadPercent float64 `json:"deload_percent"`
	// WeightIncrement is the advance step and rounding unit in kg.
	WeightIncrement float64 `json:"weight_increment_kg"`
}

// Multiplier returns the band's load multiplier. The lookup is total:
// an unconfigured band scales by 1.0.
func (r ProgressionRule) Multiplier(band ReadinessBand) float64 {
	if m, ok := r.Multipliers[band]; ok {
		return m
	}
	return 1.0
}

// DefaultRule is the rule seeded for new users. The multipliers follow the
// usual autoregulation shape: back off meaningfully on low-readiness days,
// nudge up slightly on high ones.
func DefaultRule() ProgressionRule {
	return ProgressionRule{
		Multipliers: map[ReadinessBand]float64{
			BandLow:     0.90,
			BandNeutral: 1.0,
			BandHigh:    1.025,
		},
		MissThreshold:   3,
		DeloadPercent:   0.10,
		WeightIncrement: 2.5,
	}
}

// PlannedExerciseTarget is one exercise's current plan. A nil TargetWeight
// marks a bodyweight or cardio exercise that weight-based logic never
// touches. FailureStreak is owned by the caller's program state; the engine
// only reads it and returns an updated copy.
type PlannedExerciseTarget struct {
	Exercise      string   `json:"exercise,omitempty"`
	TargetWeight  *float64 `json:"target_weight_kg"`
	RepLow        int      `json:"rep_low"`
	RepHigh       int      `json:"rep_high"`
	FailureStreak int      `json:"failure_streak"`
}

// LoggedSet is one completed set for an exercise occurrence.
type LoggedSet struct {
	WeightKg float64 `json:"weight_kg"`
	Reps     int     `json:"reps"`
}

// ExerciseProgressEvaluation is the result of evaluating one exercise
// occurrence against its plan.
type ExerciseProgressEvaluation struct {
	NextTarget    PlannedExerciseTarget `json:"next_target"`
	WasSuccessful bool                  `json:"was_successful"`
}

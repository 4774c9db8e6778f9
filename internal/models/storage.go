package models

import (
	"time"

	"github.com/google/uuid"
)

// BiometricDayRow is one biometric_days table row.
type BiometricDayRow struct {
	UserID     int       `json:"user_id"`
	Day        time.Time `json:"day"`
	SleepHours *float64  `json:"sleep_hours,omitempty"`
	RestingHR  *float64  `json:"resting_hr,omitempty"`
	HRV        *float64  `json:"hrv,omitempty"`
	Source     string    `json:"source"`
}

// BiometricDay converts a row into the engine's value type.
func (r BiometricDayRow) BiometricDay() BiometricDay {
	return BiometricDay{
		Day:        FloorDay(r.Day),
		SleepHours: r.SleepHours,
		RestingHR:  r.RestingHR,
		HRV:        r.HRV,
	}
}

// ReadinessScoreRow is one readiness_scores table row: a third-party
// readiness score for a day.
type ReadinessScoreRow struct {
	UserID int       `json:"user_id"`
	Day    time.Time `json:"day"`
	Score  float64   `json:"score"`
	Source string    `json:"source"`
}

// PlannedTargetRow is one planned_targets table row: the current stored
// plan for one exercise.
type PlannedTargetRow struct {
	UserID        int       `json:"user_id"`
	Exercise      string    `json:"exercise"`
	TargetWeight  *float64  `json:"target_weight_kg"`
	RepLow        int       `json:"rep_low"`
	RepHigh       int       `json:"rep_high"`
	FailureStreak int       `json:"failure_streak"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Target converts a row into the engine's value type.
func (r PlannedTargetRow) Target() PlannedExerciseTarget {
	return PlannedExerciseTarget{
		Exercise:      r.Exercise,
		TargetWeight:  r.TargetWeight,
		RepLow:        r.RepLow,
		RepHigh:       r.RepHigh,
		FailureStreak: r.FailureStreak,
	}
}

// LoggedSetRow is one logged_sets table row.
type LoggedSetRow struct {
	UserID      int       `json:"user_id"`
	SessionID   uuid.UUID `json:"session_id"`
	SessionDate time.Time `json:"session_date"`
	Exercise    string    `json:"exercise"`
	SetNumber   int       `json:"set_number"`
	WeightKg    float64   `json:"weight_kg"`
	Reps        int       `json:"reps"`
	IsWarmup    bool      `json:"is_warmup"`
}

// LoggedSet converts a row into the engine's value type.
func (r LoggedSetRow) LoggedSet() LoggedSet {
	return LoggedSet{WeightKg: r.WeightKg, Reps: r.Reps}
}

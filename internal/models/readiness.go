package models

import "time"

// BiometricDay is one calendar day's observed recovery metrics. Any metric
// may be absent; Day is always floored to day granularity.
type BiometricDay struct {
	Day        time.Time `json:"day"`
	SleepHours *float64  `json:"sleep_hours,omitempty"`
	RestingHR  *float64  `json:"resting_hr,omitempty"`
	HRV        *float64  `json:"hrv,omitempty"`
}

// ReadinessBand is the qualitative bucket for a day's recovery state.
type ReadinessBand string

const (
	BandLow     ReadinessBand = "low"
	BandNeutral ReadinessBand = "neutral"
	BandHigh    ReadinessBand = "high"
)

// ReadinessSource identifies where a snapshot's score came from.
type ReadinessSource string

const (
	SourceThirdParty     ReadinessSource = "third_party"
	SourceBiometricModel ReadinessSource = "biometric_model"
)

// ReadinessSnapshot is the engine's per-day readiness result. The delta
// fields are the raw (non-clamped) deviations from the 14-day baseline,
// present only when both the day's value and its baseline existed; they
// let the app explain the score without re-deriving anything.
type ReadinessSnapshot struct {
	Day        time.Time       `json:"day"`
	Score      float64         `json:"score"`
	Band       ReadinessBand   `json:"band"`
	Multiplier float64         `json:"multiplier"`
	Source     ReadinessSource `json:"source"`

	SleepDelta     *float64 `json:"sleep_delta,omitempty"`
	RestingHRDelta *float64 `json:"resting_hr_delta,omitempty"`
	HRVDelta       *float64 `json:"hrv_delta,omitempty"`
}

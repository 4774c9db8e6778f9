package models

// WearablePayload is the JSON body the mobile app POSTs after a wearable
// sync, and the shape of each per-day export file the importer reads.
type WearablePayload struct {
	Days []WearableDaySample `json:"days"`
}

// WearableDaySample carries one day's raw biometric readings plus an
// optional vendor readiness score on the vendor's 0-100 scale.
type WearableDaySample struct {
	Day        DayStamp `json:"day"`
	SleepHours *float64 `json:"sleep_hours,omitempty"`
	RestingHR  *float64 `json:"resting_hr,omitempty"`
	HRV        *float64 `json:"hrv_ms,omitempty"`
	Readiness  *float64 `json:"readiness,omitempty"`
	Source     string   `json:"source,omitempty"`
}

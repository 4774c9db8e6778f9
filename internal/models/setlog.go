package models

import "time"

// SetLogSession is one training session parsed from the mobile app's
// strength-log export.
type SetLogSession struct {
	Name      string
	Date      time.Time
	Exercises []SetLogExercise
}

// SetLogExercise is one exercise block within a session.
type SetLogExercise struct {
	Name      string
	Equipment string
	Sets      []SetLogSet
}

// SetLogSet is one exported set line. AddedWeight marks bodyweight-plus
// loading ("+20" in the export): WeightKg is then the added load only.
type SetLogSet struct {
	Number      int
	WeightKg    float64
	Reps        int
	IsWarmup    bool
	AddedWeight bool
}

package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// DayStamp handles the day formats the mobile app sends: date-only
// "2006-01-02" or a full RFC 3339 timestamp. Either way the value is
// floored to day granularity on parse.
type DayStamp struct {
	time.Time
}

const DayLayout = "2006-01-02"

func (d *DayStamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return d.Parse(s)
}

func (d DayStamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DayLayout))
}

// Parse parses a day string, trying date-only first, then RFC 3339.
func (d *DayStamp) Parse(s string) error {
	parsed, err := time.Parse(DayLayout, s)
	if err == nil {
		d.Time = parsed
		return nil
	}
	parsed, err2 := time.Parse(time.RFC3339, s)
	if err2 == nil {
		d.Time = FloorDay(parsed)
		return nil
	}
	return fmt.Errorf("cannot parse day %q: %w", s, err)
}

// ParseDay parses a day string into a day-floored time.Time.
func ParseDay(s string) (time.Time, error) {
	var d DayStamp
	if err := d.Parse(s); err != nil {
		return time.Time{}, err
	}
	return d.Time, nil
}

// FloorDay truncates a timestamp to the start of its UTC calendar day.
// All day-keyed comparisons in the engine and storage go through this.
func FloorDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

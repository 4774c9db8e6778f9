package models

import (
	"encoding/json"
	"testing"
	"time"
)

// TestDayStampParse verifies both accepted formats floor to day granularity.
func TestDayStampParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
		err   bool
	}{
		{"date only", "2026-03-10", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339 floored", "2026-03-10T14:22:05Z", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), false},
		{"rfc3339 with offset", "2026-03-10T23:30:00+02:00", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), false},
		{"garbage", "not-a-date", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDay(tt.input)
			if tt.err {
				if err == nil {
					t.Fatalf("ParseDay(%q) succeeded, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDay(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDay(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// TestDayStampJSON verifies the wrapper round-trips through JSON as a
// date-only string.
func TestDayStampJSON(t *testing.T) {
	var d DayStamp
	if err := json.Unmarshal([]byte(`"2026-03-10T14:22:05Z"`), &d); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	if string(out) != `"2026-03-10"` {
		t.Errorf("marshal = %s, want %q", out, "2026-03-10")
	}
}

// TestFloorDay verifies timezone normalization to UTC day starts.
func TestFloorDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2026, 3, 11, 3, 0, 0, 0, loc) // 2026-03-10 22:00 UTC
	got := FloorDay(in)
	want := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("FloorDay = %v, want %v", got, want)
	}
}

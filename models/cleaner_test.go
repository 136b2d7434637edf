package models

import (
	"testing"
	"time"
)

func TestWorkingHoursOn(t *testing.T) {
	c := Cleaner{ID: "c1", Active: true}
	for d := time.Monday; d <= time.Friday; d++ {
		c.Hours[d] = WorkingHours{Start: 8 * 60, End: 17 * 60}
	}
	c.TimeOff = []TimeOffEntry{{Date: "2026-09-08", Reason: "vacation"}}

	tests := []struct {
		name string
		date string
		ok   bool
	}{
		{"weekday", "2026-09-07", true},         // Monday
		{"weekend zero template", "2026-09-06", false}, // Sunday
		{"time off", "2026-09-08", false},
		{"bad date", "tomorrow", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			wh, ok := c.WorkingHoursOn(tc.date)
			if ok != tc.ok {
				t.Fatalf("WorkingHoursOn(%s) ok = %v, want %v", tc.date, ok, tc.ok)
			}
			if ok && (wh.Start != 8*60 || wh.End != 17*60) {
				t.Errorf("hours = %+v, want 08:00-17:00", wh)
			}
		})
	}
}

func TestBookingStatusPredicates(t *testing.T) {
	if !StatusCompleted.Terminal() || !StatusCancelled.Terminal() {
		t.Error("completed and cancelled must be terminal")
	}
	if StatusPending.Terminal() || StatusConfirmed.Terminal() || StatusInProgress.Terminal() {
		t.Error("non-final statuses reported terminal")
	}
	if !StatusConfirmed.Occupies() || !StatusInProgress.Occupies() {
		t.Error("confirmed and in_progress must occupy their slot")
	}
	if StatusPending.Occupies() || StatusCompleted.Occupies() || StatusCancelled.Occupies() {
		t.Error("pending, completed and cancelled must not occupy a slot")
	}
}

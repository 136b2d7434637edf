package models

import "testing"

func TestSlotOverlaps(t *testing.T) {
	base := Slot{Date: "2026-09-07", Start: 14 * 60, End: 16 * 60}

	tests := []struct {
		name  string
		other Slot
		want  bool
	}{
		{"identical", base, true},
		{"contained", Slot{Date: "2026-09-07", Start: 14*60 + 30, End: 15 * 60}, true},
		{"straddles start", Slot{Date: "2026-09-07", Start: 13 * 60, End: 15 * 60}, true},
		{"straddles end", Slot{Date: "2026-09-07", Start: 15 * 60, End: 17 * 60}, true},
		{"touching before", Slot{Date: "2026-09-07", Start: 12 * 60, End: 14 * 60}, false},
		{"touching after", Slot{Date: "2026-09-07", Start: 16 * 60, End: 18 * 60}, false},
		{"different date", Slot{Date: "2026-09-08", Start: 14 * 60, End: 16 * 60}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tc.other, got, tc.want)
			}
			if got := tc.other.Overlaps(base); got != tc.want {
				t.Errorf("Overlaps is not symmetric for %v", tc.other)
			}
		})
	}
}

func TestSlotString(t *testing.T) {
	s := Slot{Date: "2026-09-07", Start: 840, End: 965}
	if got, want := s.String(), "2026-09-07 14:00-16:05"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if s.Minutes() != 125 {
		t.Errorf("Minutes() = %d, want 125", s.Minutes())
	}
}

package models

import "fmt"

// Slot is a concrete appointment window on a single date, scoped to one cleaner.
type Slot struct {
	Date  string `bson:"date" json:"date"`   // "YYYY-MM-DD"
	Start int    `bson:"start" json:"start"` // minutes from midnight (e.g., 840 for 2:00 PM)
	End   int    `bson:"end" json:"end"`     // minutes from midnight
}

// Overlaps reports whether two slots on the same date share any time.
func (s Slot) Overlaps(o Slot) bool {
	return s.Date == o.Date && s.Start < o.End && o.Start < s.End
}

// Minutes returns the slot length in minutes.
func (s Slot) Minutes() int {
	return s.End - s.Start
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %02d:%02d-%02d:%02d", s.Date, s.Start/60, s.Start%60, s.End/60, s.End%60)
}

// FreeSlot pairs an open interval with the cleaner it belongs to,
// as returned by availability enumeration.
type FreeSlot struct {
	CleanerID string `json:"cleanerId"`
	Slot      Slot   `json:"slot"`
}

package models

import "time"

// WorkingHours is one weekday's template window in minutes from midnight.
// The zero value means the cleaner does not work that day.
type WorkingHours struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// TimeOffEntry blocks a whole date independently of slot occupancy (vacation,
// sick day). The availability index treats the date as fully booked.
type TimeOffEntry struct {
	Date   string `bson:"date" json:"date"`
	Reason string `bson:"reason,omitempty" json:"reason,omitempty"`
}

// Cleaner represents a member of the cleaning staff.
type Cleaner struct {
	ID        string          `bson:"id" json:"id"`
	Name      string          `bson:"name" json:"name"`
	Active    bool            `bson:"active" json:"active"`
	Hours     [7]WorkingHours `bson:"hours" json:"hours"` // indexed by time.Weekday (Sunday = 0)
	TimeOff   []TimeOffEntry  `bson:"time_off,omitempty" json:"timeOff,omitempty"`
	CreatedAt time.Time       `bson:"created_at" json:"createdAt"`
}

// WorkingHoursOn resolves the template for a date, returning ok=false when the
// cleaner does not work that date (day off, time off, or unparsable date).
func (c Cleaner) WorkingHoursOn(date string) (WorkingHours, bool) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return WorkingHours{}, false
	}
	for _, off := range c.TimeOff {
		if off.Date == date {
			return WorkingHours{}, false
		}
	}
	wh := c.Hours[d.Weekday()]
	if wh.End <= wh.Start {
		return WorkingHours{}, false
	}
	return wh, true
}

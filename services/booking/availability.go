package booking

import (
	"context"
	"sort"

	"tidyhome/models"
)

// DayIndex is the in-memory occupancy view for one date, rebuilt from the
// persistence layer: active cleaners working that date, their confirmed and
// in-progress slots, and per-cleaner booking counts for load balancing.
//
// The index is advisory. Enumeration may return a slot that another request
// claims moments later; the allocator re-validates under the claim guard
// before any claim write.
type DayIndex struct {
	Date     string
	Cleaners []models.Cleaner
	busy     map[string][]models.Slot
	counts   map[string]int
}

// dayIndex loads and assembles the occupancy view for a date.
func (s *DefaultBookingService) dayIndex(ctx context.Context, date string) (*DayIndex, error) {
	cleaners, err := s.Cleaners.ListActiveOn(ctx, date)
	if err != nil {
		return nil, &PersistenceError{Op: "load cleaners", Err: err}
	}

	idx := &DayIndex{
		Date:     date,
		Cleaners: cleaners,
		busy:     make(map[string][]models.Slot, len(cleaners)),
		counts:   make(map[string]int, len(cleaners)),
	}
	for _, c := range cleaners {
		bookings, err := s.Bookings.ListForCleanerOn(ctx, c.ID, date)
		if err != nil {
			return nil, &PersistenceError{Op: "load bookings", Err: err}
		}
		occupied := occupiedSlots(bookings)
		idx.busy[c.ID] = occupied
		idx.counts[c.ID] = len(occupied)
	}
	return idx, nil
}

// occupiedSlots extracts the slots held by confirmed/in-progress bookings,
// sorted by start. Cancelled bookings free their slot immediately and pending
// bookings without a cleaner occupy nothing.
func occupiedSlots(bookings []models.Booking) []models.Slot {
	var out []models.Slot
	for _, b := range bookings {
		if b.Status.Occupies() {
			out = append(out, b.Slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// IsFree reports whether the cleaner works the slot's window that date and no
// occupied slot overlaps it.
func (d *DayIndex) IsFree(cleanerID string, slot models.Slot) bool {
	cleaner, ok := d.cleaner(cleanerID)
	if !ok {
		return false
	}
	return slotFree(cleaner, d.busy[cleanerID], slot)
}

// FreeSlots enumerates every contiguous free interval of at least durationMin
// minutes across all cleaners, ordered by start time then cleaner id, so the
// listing is deterministic.
func (d *DayIndex) FreeSlots(durationMin int) []models.FreeSlot {
	var out []models.FreeSlot
	for _, c := range d.Cleaners {
		wh, ok := c.WorkingHoursOn(d.Date)
		if !ok {
			continue
		}
		cursor := wh.Start
		for _, busy := range d.busy[c.ID] {
			if busy.Start-cursor >= durationMin {
				out = append(out, models.FreeSlot{
					CleanerID: c.ID,
					Slot:      models.Slot{Date: d.Date, Start: cursor, End: busy.Start},
				})
			}
			if busy.End > cursor {
				cursor = busy.End
			}
		}
		if wh.End-cursor >= durationMin {
			out = append(out, models.FreeSlot{
				CleanerID: c.ID,
				Slot:      models.Slot{Date: d.Date, Start: cursor, End: wh.End},
			})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Slot.Start != out[j].Slot.Start {
			return out[i].Slot.Start < out[j].Slot.Start
		}
		return out[i].CleanerID < out[j].CleanerID
	})
	return out
}

// candidates returns the cleaners ordered for allocation: fewest bookings
// scheduled that date first, ties broken by cleaner id ascending.
func (d *DayIndex) candidates() []models.Cleaner {
	out := make([]models.Cleaner, len(d.Cleaners))
	copy(out, d.Cleaners)
	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := d.counts[out[i].ID], d.counts[out[j].ID]
		if ci != cj {
			return ci < cj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (d *DayIndex) cleaner(id string) (models.Cleaner, bool) {
	for _, c := range d.Cleaners {
		if c.ID == id {
			return c, true
		}
	}
	return models.Cleaner{}, false
}

// slotFree checks a slot against a cleaner's template and an occupied set.
func slotFree(cleaner models.Cleaner, occupied []models.Slot, slot models.Slot) bool {
	wh, ok := cleaner.WorkingHoursOn(slot.Date)
	if !ok {
		return false
	}
	if slot.Start < wh.Start || slot.End > wh.End {
		return false
	}
	for _, busy := range occupied {
		if busy.Overlaps(slot) {
			return false
		}
	}
	return true
}

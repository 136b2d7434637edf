package booking

import (
	"context"
	"errors"

	"go.uber.org/zap"

	bookingRepo "tidyhome/database/repository/booking"
	"tidyhome/models"
	"tidyhome/utils"
)

// allocate finds a feasible cleaner for the booking's slot and claims it.
// Order: the preferred cleaner when one is named, then all candidates sorted
// by fewest bookings that date (ties by cleaner id ascending). Returning
// Unassigned is a valid outcome, not an error; the booking stays pending and
// is retried later by staff or the periodic re-scan.
func (s *DefaultBookingService) allocate(ctx context.Context, b *models.Booking) (models.Assignment, error) {
	idx, err := s.dayIndex(ctx, b.Slot.Date)
	if err != nil {
		return models.Unassigned(), err
	}

	if b.PreferredCleanerID != "" {
		asg, err := s.tryClaim(ctx, idx, b, b.PreferredCleanerID)
		if err != nil {
			return models.Unassigned(), err
		}
		if asg.Assigned {
			return asg, nil
		}
		if b.NoSubstitute {
			return models.Unassigned(), nil
		}
	}

	for _, c := range idx.candidates() {
		if c.ID == b.PreferredCleanerID {
			continue // already tried
		}
		asg, err := s.tryClaim(ctx, idx, b, c.ID)
		if err != nil {
			return models.Unassigned(), err
		}
		if asg.Assigned {
			return asg, nil
		}
	}
	return models.Unassigned(), nil
}

// tryClaim runs the atomic check-then-claim for one cleaner. The working
// hours template is checked first; occupancy is then decided solely by the
// conditional claim write, so the persisted claim set stays the single
// source of truth. A cancelled booking releases its claim before its status
// flips, which means a racing attempt here sees the freed slot as free.
// A claim lost to a concurrent attempt reads as "not free" and the caller
// moves to the next candidate.
func (s *DefaultBookingService) tryClaim(ctx context.Context, idx *DayIndex, b *models.Booking, cleanerID string) (models.Assignment, error) {
	cleaner, ok := idx.cleaner(cleanerID)
	if !ok {
		return models.Unassigned(), nil // inactive or not working that date
	}
	if !slotFree(cleaner, nil, b.Slot) {
		return models.Unassigned(), nil // outside working hours
	}

	unlock := s.guard.lock(cleanerID, b.Slot.Date)
	defer unlock()

	if err := s.Bookings.ClaimSlot(ctx, b.ID, cleanerID, b.Slot); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			utils.GetLogger().Debug("claim lost to concurrent booking",
				zap.String("cleanerID", cleanerID),
				zap.String("slot", b.Slot.String()))
			return models.Unassigned(), nil
		}
		return models.Unassigned(), &PersistenceError{Op: "claim slot", Err: err}
	}
	return models.AssignedTo(cleanerID), nil
}

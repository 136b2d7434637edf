package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "tidyhome/database/repository/booking"
	cleanerRepo "tidyhome/database/repository/cleaner"
	"tidyhome/models"
	"tidyhome/utils"
)

// CreateBooking validates and prices the request, persists the booking as
// pending, then invokes the allocator synchronously. All price-affecting
// failures are raised before any state mutation.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error) {
	slot := models.Slot{Date: req.Date, Start: req.Start, End: req.End}
	if err := validateSlot(slot); err != nil {
		return nil, err
	}

	rules, err := s.Catalog.Rules(ctx)
	if err != nil {
		return nil, &PersistenceError{Op: "resolve pricing rules", Err: err}
	}
	price, err := Quote(*rules, req.House, req.Frequency, req.AddOnIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	b := &models.Booking{
		ID:                 uuid.New().String(),
		CustomerID:         req.CustomerID,
		Slot:               slot,
		House:              req.House,
		Frequency:          req.Frequency,
		AddOnIDs:           req.AddOnIDs,
		Price:              price,
		Status:             models.StatusPending,
		Assignment:         models.Unassigned(),
		PreferredCleanerID: req.PreferredCleanerID,
		NoSubstitute:       req.NoSubstitute,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.Bookings.Create(ctx, b); err != nil {
		return nil, &PersistenceError{Op: "create booking", Err: err}
	}

	asg, err := s.allocate(ctx, b)
	if err != nil {
		return nil, err
	}
	if !asg.Assigned {
		// Accepted but not yet staffed; retried later by staff or the
		// periodic re-scan.
		s.Events.Emit(ctx, s.event(models.EventBookingUnassigned, b))
		return b, nil
	}

	if err := s.transition(ctx, b, models.StatusConfirmed, asg); err != nil {
		// Undo the claim so the slot is not stranded occupied.
		if relErr := s.Bookings.ReleaseSlot(ctx, b.ID, asg.CleanerID, b.Slot.Date); relErr != nil {
			utils.GetLogger().Error("failed to release claim after status write failure",
				zap.String("bookingID", b.ID), zap.Error(relErr))
		}
		return nil, err
	}
	s.Events.Emit(ctx, s.event(models.EventBookingConfirmed, b))
	return b, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.loadBooking(ctx, id)
}

// ReassignCleaner is the staff operation that moves a booking to a named
// cleaner. Allowed only while the booking is pending or confirmed; fails with
// ConflictError when the new cleaner is not free for the existing slot.
func (s *DefaultBookingService) ReassignCleaner(ctx context.Context, bookingID, cleanerID string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusPending && b.Status != models.StatusConfirmed {
		return nil, NewValidationError("status", fmt.Sprintf("cannot reassign a %s booking", b.Status))
	}
	if b.Assignment.Assigned && b.Assignment.CleanerID == cleanerID {
		return b, nil // already assigned there
	}

	cleaner, err := s.Cleaners.GetByID(ctx, cleanerID)
	if err != nil {
		if errors.Is(err, cleanerRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "cleaner", ID: cleanerID}
		}
		return nil, &PersistenceError{Op: "load cleaner", Err: err}
	}

	if !slotFree(*cleaner, nil, b.Slot) {
		return nil, &ConflictError{CleanerID: cleanerID, Message: "outside working hours for the requested slot"}
	}

	unlock := s.guard.lock(cleanerID, b.Slot.Date)
	defer unlock()

	if err := s.Bookings.ClaimSlot(ctx, b.ID, cleanerID, b.Slot); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, &ConflictError{CleanerID: cleanerID, Message: "not free for the requested slot"}
		}
		return nil, &PersistenceError{Op: "claim slot", Err: err}
	}

	// The new claim is in place; drop the old one before the status write.
	if prev := b.Assignment; prev.Assigned && prev.CleanerID != cleanerID {
		if err := s.Bookings.ReleaseSlot(ctx, b.ID, prev.CleanerID, b.Slot.Date); err != nil {
			utils.GetLogger().Error("failed to release previous claim on reassignment",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}

	if err := s.transition(ctx, b, models.StatusConfirmed, models.AssignedTo(cleanerID)); err != nil {
		return nil, err
	}
	s.Events.Emit(ctx, s.event(models.EventBookingConfirmed, b))
	return b, nil
}

// CancelBooking is reachable from any non-terminal state. The slot claim is
// released before the status write, so a racing allocation for the freed slot
// never sees a stale occupied view.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status.Terminal() {
		return nil, NewValidationError("status", fmt.Sprintf("cannot cancel a %s booking", b.Status))
	}

	if b.Assignment.Assigned {
		if err := s.Bookings.ReleaseSlot(ctx, b.ID, b.Assignment.CleanerID, b.Slot.Date); err != nil {
			return nil, &PersistenceError{Op: "release slot", Err: err}
		}
	}
	if err := s.transition(ctx, b, models.StatusCancelled, b.Assignment); err != nil {
		return nil, err
	}
	s.Events.Emit(ctx, s.event(models.EventBookingCancelled, b))
	return b, nil
}

// StartBooking marks a confirmed booking in progress on the appointment day.
func (s *DefaultBookingService) StartBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusConfirmed {
		return nil, NewValidationError("status", fmt.Sprintf("cannot start a %s booking", b.Status))
	}
	if err := s.transition(ctx, b, models.StatusInProgress, b.Assignment); err != nil {
		return nil, err
	}
	return b, nil
}

// CompleteBooking finishes an in-progress booking and emits the invoice data
// for the external invoicing collaborator. The slot claim is released so the
// claim set agrees with the availability view, which stops counting completed
// bookings as occupying.
func (s *DefaultBookingService) CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	b, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Status != models.StatusInProgress {
		return nil, NewValidationError("status", fmt.Sprintf("cannot complete a %s booking", b.Status))
	}

	if b.Assignment.Assigned {
		if err := s.Bookings.ReleaseSlot(ctx, b.ID, b.Assignment.CleanerID, b.Slot.Date); err != nil {
			utils.GetLogger().Error("failed to release claim on completion",
				zap.String("bookingID", b.ID), zap.Error(err))
		}
	}
	if err := s.transition(ctx, b, models.StatusCompleted, b.Assignment); err != nil {
		return nil, err
	}

	ev := s.event(models.EventBookingCompleted, b)
	invoice := buildInvoiceData(b)
	ev.Invoice = &invoice
	s.Events.Emit(ctx, ev)
	return b, nil
}

// GetAvailability lists every free (cleaner, slot) pair on the date that fits
// the requested duration, ordered by start time then cleaner id.
func (s *DefaultBookingService) GetAvailability(ctx context.Context, date string, durationHours int) ([]models.FreeSlot, error) {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, NewValidationError("date", fmt.Sprintf("want YYYY-MM-DD, got %q", date))
	}
	if durationHours <= 0 {
		return nil, NewValidationError("durationHours", "must be positive")
	}
	idx, err := s.dayIndex(ctx, date)
	if err != nil {
		return nil, err
	}
	return idx.FreeSlots(durationHours * 60), nil
}

// RescanUnassigned retries allocation for pending unassigned bookings from
// today onward. Bookings that still cannot be staffed stay pending.
func (s *DefaultBookingService) RescanUnassigned(ctx context.Context) (int, error) {
	today := time.Now().Format("2006-01-02")
	pending, err := s.Bookings.ListPendingUnassigned(ctx, today)
	if err != nil {
		return 0, &PersistenceError{Op: "list pending bookings", Err: err}
	}

	confirmed := 0
	for i := range pending {
		b := pending[i]
		asg, err := s.allocate(ctx, &b)
		if err != nil {
			utils.GetLogger().Warn("re-scan allocation failed",
				zap.String("bookingID", b.ID), zap.Error(err))
			continue
		}
		if !asg.Assigned {
			continue
		}
		if err := s.transition(ctx, &b, models.StatusConfirmed, asg); err != nil {
			if relErr := s.Bookings.ReleaseSlot(ctx, b.ID, asg.CleanerID, b.Slot.Date); relErr != nil {
				utils.GetLogger().Error("failed to release claim after re-scan status failure",
					zap.String("bookingID", b.ID), zap.Error(relErr))
			}
			continue
		}
		s.Events.Emit(ctx, s.event(models.EventBookingConfirmed, &b))
		confirmed++
	}
	return confirmed, nil
}

// transition writes the status and assignment, then mirrors them onto the
// in-memory booking.
func (s *DefaultBookingService) transition(ctx context.Context, b *models.Booking, status models.BookingStatus, asg models.Assignment) error {
	now := time.Now()
	if err := s.Bookings.UpdateStatus(ctx, b.ID, status, asg, now); err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return &NotFoundError{Resource: "booking", ID: b.ID}
		}
		return &PersistenceError{Op: "update booking status", Err: err}
	}
	b.Status = status
	b.Assignment = asg
	b.UpdatedAt = now
	switch status {
	case models.StatusCompleted:
		b.CompletedAt = &now
	case models.StatusCancelled:
		b.CancelledAt = &now
	}
	return nil
}

func (s *DefaultBookingService) loadBooking(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, &NotFoundError{Resource: "booking", ID: id}
		}
		return nil, &PersistenceError{Op: "load booking", Err: err}
	}
	return b, nil
}

func (s *DefaultBookingService) event(eventType string, b *models.Booking) models.BookingEvent {
	return models.BookingEvent{
		Type:       eventType,
		BookingID:  b.ID,
		Status:     b.Status,
		Assignment: b.Assignment,
		Slot:       b.Slot,
		OccurredAt: time.Now(),
	}
}

func validateSlot(slot models.Slot) error {
	if _, err := time.Parse("2006-01-02", slot.Date); err != nil {
		return NewValidationError("date", fmt.Sprintf("want YYYY-MM-DD, got %q", slot.Date))
	}
	if slot.Start < 0 || slot.End > 24*60 || slot.End <= slot.Start {
		return NewValidationError("slot", fmt.Sprintf("invalid window [%d, %d)", slot.Start, slot.End))
	}
	return nil
}

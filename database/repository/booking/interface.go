package bookingRepo

import (
	"context"
	"errors"
	"time"

	"tidyhome/models"
)

var (
	// ErrNotFound is returned when no booking matches the given id.
	ErrNotFound = errors.New("booking not found")
	// ErrSlotTaken is returned by ClaimSlot when another booking already
	// holds an overlapping claim for the same cleaner and date.
	ErrSlotTaken = errors.New("slot already claimed")
)

// BookingRepository defines data access for bookings and the per-cleaner,
// per-date slot claims that enforce exclusivity.
type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListForCleanerOn returns all non-cancelled bookings assigned to the
	// cleaner on the date, ordered by slot start.
	ListForCleanerOn(ctx context.Context, cleanerID, date string) ([]models.Booking, error)
	// ListPendingUnassigned returns pending bookings with no cleaner whose
	// appointment date is on or after fromDate, oldest first.
	ListPendingUnassigned(ctx context.Context, fromDate string) ([]models.Booking, error)
	// UpdateStatus moves a booking to the given status. It also persists the
	// assignment so confirmation and reassignment ride the same write.
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus, assignment models.Assignment, at time.Time) error

	// ClaimSlot atomically records that bookingID occupies the slot for the
	// cleaner. It fails with ErrSlotTaken when any overlapping claim exists;
	// the write is the single point of truth concurrent allocators race on.
	ClaimSlot(ctx context.Context, bookingID, cleanerID string, slot models.Slot) error
	// ReleaseSlot removes a booking's claim. Callers must release before (or
	// atomically with) the status write so racing allocators never observe a
	// stale occupied view.
	ReleaseSlot(ctx context.Context, bookingID, cleanerID string, date string) error
}

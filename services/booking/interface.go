package booking

import (
	"context"

	bookingRepo "tidyhome/database/repository/booking"
	cleanerRepo "tidyhome/database/repository/cleaner"
	"tidyhome/models"
	"tidyhome/services/catalog"
	"tidyhome/services/events"
)

// BookingService owns the booking lifecycle: creation with frozen pricing,
// synchronous allocation, staff transitions, cancellation, and availability
// queries.
type BookingService interface {
	CreateBooking(ctx context.Context, req models.BookingRequest) (*models.Booking, error)
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	ReassignCleaner(ctx context.Context, bookingID, cleanerID string) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	StartBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	CompleteBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	GetAvailability(ctx context.Context, date string, durationHours int) ([]models.FreeSlot, error)
	// RescanUnassigned retries allocation for pending unassigned bookings
	// with a future appointment date, returning how many were confirmed.
	RescanUnassigned(ctx context.Context) (int, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Cleaners cleanerRepo.CleanerRepository
	Catalog  catalog.CatalogService
	Events   events.Emitter

	guard *claimGuard
}

func NewBookingService(
	bookings bookingRepo.BookingRepository,
	cleaners cleanerRepo.CleanerRepository,
	cat catalog.CatalogService,
	emitter events.Emitter,
) *DefaultBookingService {
	return &DefaultBookingService{
		Bookings: bookings,
		Cleaners: cleaners,
		Catalog:  cat,
		Events:   emitter,
		guard:    newClaimGuard(),
	}
}

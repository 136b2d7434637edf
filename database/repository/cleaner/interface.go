package cleanerRepo

import (
	"context"
	"errors"

	"tidyhome/models"
)

// ErrNotFound is returned when no cleaner matches the given id.
var ErrNotFound = errors.New("cleaner not found")

// CleanerRepository defines data access for cleaning staff records.
type CleanerRepository interface {
	Create(ctx context.Context, c *models.Cleaner) error
	GetByID(ctx context.Context, id string) (*models.Cleaner, error)
	// ListActiveOn returns active cleaners who work on the given date per
	// their weekday template and time-off calendar, ordered by id.
	ListActiveOn(ctx context.Context, date string) ([]models.Cleaner, error)
	Update(ctx context.Context, c *models.Cleaner) error
	AddTimeOff(ctx context.Context, id string, entry models.TimeOffEntry) error
}

package catalogRepo

import (
	"context"
	"errors"

	"tidyhome/models"
)

// ErrNotFound is returned when no service matches the given id.
var ErrNotFound = errors.New("service not found")

// CatalogRepository defines read/write access to the service catalog and the
// pricing-rule document. The booking core only reads; writes exist for staff
// catalog management and affect future bookings exclusively.
type CatalogRepository interface {
	GetService(ctx context.Context, id string) (*models.Service, error)
	ListActive(ctx context.Context) ([]models.Service, error)
	UpsertService(ctx context.Context, s *models.Service) error
	// GetPricingRules returns the current rules snapshot. The add-on price
	// map is assembled from active add-on services at read time.
	GetPricingRules(ctx context.Context) (*models.PricingRules, error)
	SavePricingRules(ctx context.Context, rules *models.PricingRules) error
}

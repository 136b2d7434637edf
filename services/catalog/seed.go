package catalog

import (
	"context"

	"tidyhome/models"
)

// DefaultPricingRules returns the launch price list.
func DefaultPricingRules() *models.PricingRules {
	return &models.PricingRules{
		BasePrices: map[string]float64{
			"0-1000":    80.0,
			"1000-1500": 100.0,
			"1500-2000": 120.0,
			"2000-3000": 150.0,
			"3000+":     190.0,
		},
		Multipliers: map[models.Frequency]float64{
			models.FrequencyOneTime:  1.0,
			models.FrequencyWeekly:   0.85,
			models.FrequencyBiweekly: 0.90,
			models.FrequencyMonthly:  0.95,
		},
		RoomPrices: map[models.RoomType]float64{
			models.RoomBedroom:      45.0,
			models.RoomBathroom:     29.8,
			models.RoomHalfBathroom: 18.0,
		},
		KitchenPrice:    25.0,
		LivingRoomPrice: 20.0,
	}
}

// DefaultServices returns the launch catalog entries.
func DefaultServices() []models.Service {
	return []models.Service{
		{ID: "standard-clean", Name: "Standard Clean", Category: models.CategoryStandard, UnitPrice: 0, Active: true},
		{ID: "window-washing", Name: "Window Washing", Category: models.CategoryAddOn, UnitPrice: 35.0, Active: true},
		{ID: "oven-clean", Name: "Oven Deep Clean", Category: models.CategoryAddOn, UnitPrice: 28.5, Active: true},
		{ID: "fridge-clean", Name: "Fridge Clean", Category: models.CategoryAddOn, UnitPrice: 22.0, Active: true},
		{ID: "laundry", Name: "Laundry & Folding", Category: models.CategoryAddOn, UnitPrice: 18.0, Active: true},
	}
}

// Seed writes the default rules and services when the catalog is empty.
func (s *DefaultCatalogService) Seed(ctx context.Context) error {
	if _, err := s.Repo.GetPricingRules(ctx); err == nil {
		return nil
	}
	if err := s.Repo.SavePricingRules(ctx, DefaultPricingRules()); err != nil {
		return err
	}
	for _, svc := range DefaultServices() {
		svc := svc
		if err := s.Repo.UpsertService(ctx, &svc); err != nil {
			return err
		}
	}
	return nil
}

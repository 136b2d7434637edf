package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	catalogRepo "tidyhome/database/repository/catalog"
	"tidyhome/models"
	"tidyhome/utils"
)

const rulesCacheKey = "catalog:pricing_rules"

// CatalogService resolves services and pricing-rule snapshots for the booking
// core. Resolution happens exactly once per booking request; the resulting
// prices are frozen into the booking, so a later catalog edit only affects
// future bookings.
type CatalogService interface {
	ResolveService(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context) ([]models.Service, error)
	Rules(ctx context.Context) (*models.PricingRules, error)
	UpdateService(ctx context.Context, s *models.Service) error
}

// DefaultCatalogService implements CatalogService with a short-lived Redis
// cache in front of the rules document.
type DefaultCatalogService struct {
	Repo     catalogRepo.CatalogRepository
	Cache    *redis.Client // nil disables caching
	CacheTTL time.Duration
}

func (s *DefaultCatalogService) ResolveService(ctx context.Context, id string) (*models.Service, error) {
	svc, err := s.Repo.GetService(ctx, id)
	if err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *DefaultCatalogService) ListServices(ctx context.Context) ([]models.Service, error) {
	return s.Repo.ListActive(ctx)
}

func (s *DefaultCatalogService) Rules(ctx context.Context) (*models.PricingRules, error) {
	if s.Cache != nil {
		if raw, err := s.Cache.Get(ctx, rulesCacheKey).Bytes(); err == nil {
			var rules models.PricingRules
			if err := json.Unmarshal(raw, &rules); err == nil {
				return &rules, nil
			}
		}
	}

	rules, err := s.Repo.GetPricingRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve pricing rules: %w", err)
	}

	if s.Cache != nil {
		ttl := s.CacheTTL
		if ttl == 0 {
			ttl = 5 * time.Minute
		}
		if raw, err := json.Marshal(rules); err == nil {
			if err := s.Cache.Set(ctx, rulesCacheKey, raw, ttl).Err(); err != nil {
				utils.GetLogger().Warn("pricing rules cache write failed", zap.Error(err))
			}
		}
	}
	return rules, nil
}

// UpdateService writes a catalog entry and drops the cached rules snapshot so
// the next quote sees the edit. Existing bookings keep their frozen prices.
func (s *DefaultCatalogService) UpdateService(ctx context.Context, svc *models.Service) error {
	if err := s.Repo.UpsertService(ctx, svc); err != nil {
		return err
	}
	if s.Cache != nil {
		if err := s.Cache.Del(ctx, rulesCacheKey).Err(); err != nil {
			utils.GetLogger().Warn("pricing rules cache invalidation failed", zap.Error(err))
		}
	}
	return nil
}

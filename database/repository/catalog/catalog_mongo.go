package catalogRepo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tidyhome/database"
	"tidyhome/models"
)

const rulesDocID = "pricing_rules"

// MongoCatalogRepo is the MongoDB implementation of CatalogRepository.
type MongoCatalogRepo struct {
	services *mongo.Collection
	rules    *mongo.Collection
}

func NewMongoCatalogRepo() *MongoCatalogRepo {
	return &MongoCatalogRepo{
		services: database.Collection("services"),
		rules:    database.Collection("pricing_rules"),
	}
}

func (r *MongoCatalogRepo) GetService(ctx context.Context, id string) (*models.Service, error) {
	var s models.Service
	err := r.services.FindOne(ctx, bson.M{"id": id}).Decode(&s)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find service %s: %w", id, err)
	}
	return &s, nil
}

func (r *MongoCatalogRepo) ListActive(ctx context.Context) ([]models.Service, error) {
	cur, err := r.services.Find(ctx, bson.M{"active": true}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Service
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode services: %w", err)
	}
	return out, nil
}

func (r *MongoCatalogRepo) UpsertService(ctx context.Context, s *models.Service) error {
	_, err := r.services.ReplaceOne(ctx, bson.M{"id": s.ID}, s, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert service %s: %w", s.ID, err)
	}
	return nil
}

func (r *MongoCatalogRepo) GetPricingRules(ctx context.Context) (*models.PricingRules, error) {
	var doc struct {
		ID    string              `bson:"_id"`
		Rules models.PricingRules `bson:"rules"`
	}
	err := r.rules.FindOne(ctx, bson.M{"_id": rulesDocID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("pricing rules not seeded")
	}
	if err != nil {
		return nil, fmt.Errorf("find pricing rules: %w", err)
	}
	rules := doc.Rules

	// Add-on prices come from the live catalog so staff edit services, not
	// the rules doc. Bookings freeze the snapshot they were quoted from.
	services, err := r.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	rules.AddOnPrices = make(map[string]float64, len(services))
	for _, s := range services {
		if s.Category == models.CategoryAddOn {
			rules.AddOnPrices[s.ID] = s.UnitPrice
		}
	}
	return &rules, nil
}

func (r *MongoCatalogRepo) SavePricingRules(ctx context.Context, rules *models.PricingRules) error {
	doc := bson.M{"_id": rulesDocID, "rules": rules}
	_, err := r.rules.ReplaceOne(ctx, bson.M{"_id": rulesDocID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save pricing rules: %w", err)
	}
	return nil
}

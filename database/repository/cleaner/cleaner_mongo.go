package cleanerRepo

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tidyhome/database"
	"tidyhome/models"
)

// MongoCleanerRepo is the MongoDB implementation of CleanerRepository.
type MongoCleanerRepo struct {
	coll *mongo.Collection
}

func NewMongoCleanerRepo() *MongoCleanerRepo {
	return &MongoCleanerRepo{coll: database.Collection("cleaners")}
}

func (r *MongoCleanerRepo) Create(ctx context.Context, c *models.Cleaner) error {
	if _, err := r.coll.InsertOne(ctx, c); err != nil {
		return fmt.Errorf("insert cleaner: %w", err)
	}
	return nil
}

func (r *MongoCleanerRepo) GetByID(ctx context.Context, id string) (*models.Cleaner, error) {
	var c models.Cleaner
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find cleaner %s: %w", id, err)
	}
	return &c, nil
}

// ListActiveOn filters by the active flag in the query and applies the
// weekday template and time-off calendar in memory, since both live inside
// the cleaner document.
func (r *MongoCleanerRepo) ListActiveOn(ctx context.Context, date string) ([]models.Cleaner, error) {
	cur, err := r.coll.Find(ctx, bson.M{"active": true}, options.Find().SetSort(bson.D{{Key: "id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list active cleaners: %w", err)
	}
	defer cur.Close(ctx)

	var all []models.Cleaner
	if err := cur.All(ctx, &all); err != nil {
		return nil, fmt.Errorf("decode cleaners: %w", err)
	}

	out := all[:0]
	for _, c := range all {
		if _, ok := c.WorkingHoursOn(date); ok {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *MongoCleanerRepo) Update(ctx context.Context, c *models.Cleaner) error {
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": c.ID}, c)
	if err != nil {
		return fmt.Errorf("update cleaner %s: %w", c.ID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoCleanerRepo) AddTimeOff(ctx context.Context, id string, entry models.TimeOffEntry) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": id},
		bson.M{"$addToSet": bson.M{"time_off": entry}},
	)
	if err != nil {
		return fmt.Errorf("add time off for cleaner %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

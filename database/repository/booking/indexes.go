package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the bookings and schedules
// collections. The unique (cleaner_id, date) schedule index is load-bearing:
// ClaimSlot's upsert relies on it to reject a racing claim.
func (r *MongoBookingRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bookingModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "assignment.cleaner_id", Value: 1}, {Key: "slot.date", Value: 1}},
			Options: options.Index().SetName("cleaner_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "assignment.assigned", Value: 1}, {Key: "slot.date", Value: 1}},
			Options: options.Index().SetName("status_assigned_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "customer_id", Value: 1}},
			Options: options.Index().SetName("customer_idx"),
		},
	}
	if _, err := r.bookings.Indexes().CreateMany(ctx, bookingModels); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}

	scheduleModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "cleaner_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_cleaner_date"),
		},
	}
	if _, err := r.schedules.Indexes().CreateMany(ctx, scheduleModels); err != nil {
		return fmt.Errorf("failed to create schedule indexes: %w", err)
	}
	return nil
}

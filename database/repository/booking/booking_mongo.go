package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tidyhome/database"
	"tidyhome/models"
)

// MongoBookingRepo is the MongoDB implementation of BookingRepository.
// Bookings live in the bookings collection; slot claims live in a schedules
// collection keyed by (cleaner_id, date) with a unique index, so the
// conditional claim update either matches a claim-free window or trips the
// duplicate-key guard.
type MongoBookingRepo struct {
	bookings  *mongo.Collection
	schedules *mongo.Collection
}

func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{
		bookings:  database.Collection("bookings"),
		schedules: database.Collection("schedules"),
	}
}

func (r *MongoBookingRepo) Create(ctx context.Context, b *models.Booking) error {
	if _, err := r.bookings.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := r.bookings.FindOne(ctx, bson.M{"id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", id, err)
	}
	return &b, nil
}

func (r *MongoBookingRepo) ListForCleanerOn(ctx context.Context, cleanerID, date string) ([]models.Booking, error) {
	filter := bson.M{
		"assignment.cleaner_id": cleanerID,
		"slot.date":             date,
		"status":                bson.M{"$ne": models.StatusCancelled},
	}
	cur, err := r.bookings.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "slot.start", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list bookings for cleaner %s on %s: %w", cleanerID, date, err)
	}
	defer cur.Close(ctx)

	var out []models.Booking
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return out, nil
}

func (r *MongoBookingRepo) ListPendingUnassigned(ctx context.Context, fromDate string) ([]models.Booking, error) {
	filter := bson.M{
		"status":              models.StatusPending,
		"assignment.assigned": false,
		"slot.date":           bson.M{"$gte": fromDate},
	}
	cur, err := r.bookings.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list pending unassigned bookings: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.Booking
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return out, nil
}

func (r *MongoBookingRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, assignment models.Assignment, at time.Time) error {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"assignment": assignment,
		"updated_at": at,
	}}
	switch status {
	case models.StatusCompleted:
		update["$set"].(bson.M)["completed_at"] = at
	case models.StatusCancelled:
		update["$set"].(bson.M)["cancelled_at"] = at
	}
	res, err := r.bookings.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("update booking %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ClaimSlot performs the atomic check-then-claim. The filter only matches the
// cleaner's schedule document when no existing claim overlaps the requested
// interval; with upsert enabled, a lost race surfaces either as a zero match
// (document exists but has an overlap) via the unique (cleaner_id, date)
// index duplicate-key error, or as a clean insert when the day was empty.
func (r *MongoBookingRepo) ClaimSlot(ctx context.Context, bookingID, cleanerID string, slot models.Slot) error {
	filter := bson.M{
		"cleaner_id": cleanerID,
		"date":       slot.Date,
		"claims": bson.M{"$not": bson.M{"$elemMatch": bson.M{
			"start": bson.M{"$lt": slot.End},
			"end":   bson.M{"$gt": slot.Start},
		}}},
	}
	update := bson.M{"$push": bson.M{"claims": bson.M{
		"booking_id": bookingID,
		"start":      slot.Start,
		"end":        slot.End,
	}}}

	_, err := r.schedules.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("claim slot %s for cleaner %s: %w", slot, cleanerID, err)
	}
	return nil
}

func (r *MongoBookingRepo) ReleaseSlot(ctx context.Context, bookingID, cleanerID string, date string) error {
	_, err := r.schedules.UpdateOne(ctx,
		bson.M{"cleaner_id": cleanerID, "date": date},
		bson.M{"$pull": bson.M{"claims": bson.M{"booking_id": bookingID}}},
	)
	if err != nil {
		return fmt.Errorf("release slot for booking %s: %w", bookingID, err)
	}
	return nil
}

package models

import "time"

// BookingStatus is the lifecycle state of a booking. Bookings are never
// deleted, only status-transitioned.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// Terminal reports whether no further transition is allowed.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Occupies reports whether a booking in this status holds its cleaner-slot.
// Pending bookings without a cleaner occupy nothing; cancelled bookings free
// their slot the moment the status is written.
func (s BookingStatus) Occupies() bool {
	return s == StatusConfirmed || s == StatusInProgress
}

// Assignment is the allocation outcome as an explicit tagged variant:
// either Assigned with a cleaner id, or Unassigned (accepted but not yet
// staffed, awaiting a later allocation pass).
type Assignment struct {
	Assigned  bool   `bson:"assigned" json:"assigned"`
	CleanerID string `bson:"cleaner_id,omitempty" json:"cleanerId,omitempty"`
}

func AssignedTo(cleanerID string) Assignment {
	return Assignment{Assigned: true, CleanerID: cleanerID}
}

func Unassigned() Assignment {
	return Assignment{}
}

// Booking is a customer's cleaning appointment record.
type Booking struct {
	ID                 string         `bson:"id" json:"id"`
	CustomerID         string         `bson:"customer_id" json:"customerId"`
	Slot               Slot           `bson:"slot" json:"slot"`
	House              HouseProfile   `bson:"house" json:"house"`
	Frequency          Frequency      `bson:"frequency" json:"frequency"`
	AddOnIDs           []string       `bson:"addon_ids,omitempty" json:"addOnIds,omitempty"`
	Price              PriceBreakdown `bson:"price" json:"price"` // frozen at creation, never recomputed
	Status             BookingStatus  `bson:"status" json:"status"`
	Assignment         Assignment     `bson:"assignment" json:"assignment"`
	PreferredCleanerID string         `bson:"preferred_cleaner_id,omitempty" json:"preferredCleanerId,omitempty"`
	NoSubstitute       bool           `bson:"no_substitute,omitempty" json:"noSubstitute,omitempty"`
	CreatedAt          time.Time      `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time      `bson:"updated_at" json:"updatedAt"`
	CompletedAt        *time.Time     `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
	CancelledAt        *time.Time     `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
}

// BookingRequest is the inbound payload for creating a booking.
type BookingRequest struct {
	CustomerID         string       `json:"customerId" binding:"required"`
	Date               string       `json:"date" binding:"required"` // "YYYY-MM-DD"
	Start              int          `json:"start"`                   // minutes from midnight
	End                int          `json:"end"`
	House              HouseProfile `json:"house"`
	Frequency          Frequency    `json:"frequency"`
	AddOnIDs           []string     `json:"addOnIds,omitempty"`
	PreferredCleanerID string       `json:"preferredCleanerId,omitempty"`
	NoSubstitute       bool         `json:"noSubstitute,omitempty"`
}

package models

import "time"

// Domain event types emitted by the booking core. Consumed asynchronously by
// invoicing, notification, and calendar-sync collaborators.
const (
	EventBookingConfirmed  = "booking:confirmed"
	EventBookingCompleted  = "booking:completed"
	EventBookingCancelled  = "booking:cancelled"
	EventBookingUnassigned = "booking:unassigned"
)

// BookingEvent is the payload attached to every domain event.
type BookingEvent struct {
	Type       string        `json:"type"`
	BookingID  string        `json:"bookingId"`
	Status     BookingStatus `json:"status"`
	Assignment Assignment    `json:"assignment"`
	Slot       Slot          `json:"slot"`
	Invoice    *InvoiceData  `json:"invoice,omitempty"` // set on booking:completed only
	OccurredAt time.Time     `json:"occurredAt"`
}

package models

import "time"

// InvoiceLine is one priced line on an invoice.
type InvoiceLine struct {
	Description string  `bson:"description" json:"description"`
	Amount      float64 `bson:"amount" json:"amount"`
}

// InvoiceData carries everything the external invoicing collaborator needs to
// render an invoice for a completed booking. The core assembles the data from
// the frozen price breakdown; rendering and delivery happen elsewhere.
type InvoiceData struct {
	Number     string        `bson:"number" json:"number"`
	BookingID  string        `bson:"booking_id" json:"bookingId"`
	CustomerID string        `bson:"customer_id" json:"customerId"`
	CleanerID  string        `bson:"cleaner_id,omitempty" json:"cleanerId,omitempty"`
	Date       string        `bson:"date" json:"date"`
	Lines      []InvoiceLine `bson:"lines" json:"lines"`
	Total      float64       `bson:"total" json:"total"`
	IssuedAt   time.Time     `bson:"issued_at" json:"issuedAt"`
}

package booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tidyhome/models"
)

// buildInvoiceData assembles the invoice payload for a completed booking from
// its frozen price breakdown. Rendering and delivery belong to the external
// invoicing collaborator.
func buildInvoiceData(b *models.Booking) models.InvoiceData {
	var lines []models.InvoiceLine
	lines = append(lines, models.InvoiceLine{
		Description: fmt.Sprintf("Standard clean (%s, %s)", b.House.SizeBand, b.Frequency),
		Amount:      b.Price.Base,
	})
	if b.Price.Room > 0 {
		lines = append(lines, models.InvoiceLine{Description: "Room surcharges", Amount: b.Price.Room})
	}
	if b.Price.AddOnTotal > 0 {
		lines = append(lines, models.InvoiceLine{
			Description: "Add-on services: " + strings.Join(b.AddOnIDs, ", "),
			Amount:      b.Price.AddOnTotal,
		})
	}

	return models.InvoiceData{
		Number:     "INV-" + strings.ToUpper(uuid.New().String()[:8]),
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		CleanerID:  b.Assignment.CleanerID,
		Date:       b.Slot.Date,
		Lines:      lines,
		Total:      b.Price.Total,
		IssuedAt:   time.Now(),
	}
}

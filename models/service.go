package models

// ServiceCategory distinguishes the standard clean from purchasable extras.
type ServiceCategory string

const (
	CategoryStandard ServiceCategory = "standard"
	CategoryAddOn    ServiceCategory = "add-on"
)

// Service is a catalog entry. Bookings reference services by id at creation
// time only; the resolved unit price is copied into the booking, so editing a
// service later affects future bookings exclusively.
type Service struct {
	ID        string          `bson:"id" json:"id"`
	Name      string          `bson:"name" json:"name"`
	Category  ServiceCategory `bson:"category" json:"category"`
	UnitPrice float64         `bson:"unit_price" json:"unit_price"`
	Active    bool            `bson:"active" json:"active"`
}

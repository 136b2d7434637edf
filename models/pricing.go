package models

// Frequency is how often the customer wants the service repeated. Recurring
// frequencies discount the base price only, never rooms or add-ons.
type Frequency string

const (
	FrequencyOneTime  Frequency = "one_time"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"
)

// RoomType identifies a countable room category in a house profile.
type RoomType string

const (
	RoomBedroom      RoomType = "bedroom"
	RoomBathroom     RoomType = "bathroom"
	RoomHalfBathroom RoomType = "half_bathroom"
)

// HouseProfile describes the property attached to a booking request.
// Kitchen and living room are flat-priced flags rather than counts.
type HouseProfile struct {
	SizeBand   string           `bson:"size_band" json:"sizeBand"` // e.g., "1500-2000"
	Rooms      map[RoomType]int `bson:"rooms,omitempty" json:"rooms,omitempty"`
	Kitchen    bool             `bson:"kitchen" json:"kitchen"`
	LivingRoom bool             `bson:"living_room" json:"livingRoom"`
}

// PricingRules is the read-only catalog snapshot the pricing engine quotes
// from. It is resolved exactly once per booking request and the resulting
// breakdown is frozen into the booking; later catalog edits never touch
// existing bookings.
type PricingRules struct {
	BasePrices      map[string]float64    `bson:"base_prices" json:"basePrices"`            // size band -> base price
	Multipliers     map[Frequency]float64 `bson:"multipliers" json:"multipliers"`           // frequency -> discount multiplier (<= 1)
	RoomPrices      map[RoomType]float64  `bson:"room_prices" json:"roomPrices"`            // room type -> unit price
	KitchenPrice    float64               `bson:"kitchen_price" json:"kitchenPrice"`        // flat
	LivingRoomPrice float64               `bson:"living_room_price" json:"livingRoomPrice"` // flat
	AddOnPrices     map[string]float64    `bson:"addon_prices" json:"addOnPrices"`          // add-on service id -> unit price
}

// PriceBreakdown is the decomposed price stored with a booking. Base already
// includes the frequency multiplier, so Total = Base + Room + AddOnTotal,
// with only Total rounded to two decimals.
type PriceBreakdown struct {
	Base       float64 `bson:"base" json:"base"`
	Room       float64 `bson:"room" json:"room"`
	AddOnTotal float64 `bson:"addon_total" json:"addOnTotal"`
	Total      float64 `bson:"total" json:"total"`
}

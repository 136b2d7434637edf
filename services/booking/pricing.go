package booking

import (
	"fmt"
	"math"
	"sort"

	"tidyhome/models"
)

// Quote computes the price breakdown for a booking request against a frozen
// rules snapshot. It is a pure function: no I/O, identical inputs always
// produce an identical breakdown.
//
// The frequency multiplier applies to the base price only, never to rooms or
// add-ons. All components stay unrounded floats built from two-decimal
// catalog inputs; only the final total is rounded, half away from zero, to
// two decimals.
func Quote(rules models.PricingRules, house models.HouseProfile, freq models.Frequency, addOnIDs []string) (models.PriceBreakdown, error) {
	base, ok := rules.BasePrices[house.SizeBand]
	if !ok {
		return models.PriceBreakdown{}, NewValidationError("sizeBand", fmt.Sprintf("unknown house-size band %q", house.SizeBand))
	}

	mult, ok := rules.Multipliers[freq]
	if !ok {
		return models.PriceBreakdown{}, NewValidationError("frequency", fmt.Sprintf("unknown frequency %q", freq))
	}

	// Summation order is fixed so identical inputs always produce the exact
	// same floats.
	roomTypes := make([]models.RoomType, 0, len(house.Rooms))
	for rt := range house.Rooms {
		roomTypes = append(roomTypes, rt)
	}
	sort.Slice(roomTypes, func(i, j int) bool { return roomTypes[i] < roomTypes[j] })

	room := 0.0
	for _, rt := range roomTypes {
		count := house.Rooms[rt]
		if count < 0 {
			return models.PriceBreakdown{}, NewValidationError("rooms", fmt.Sprintf("negative count for %s", rt))
		}
		unit, ok := rules.RoomPrices[rt]
		if !ok {
			return models.PriceBreakdown{}, NewValidationError("rooms", fmt.Sprintf("unknown room type %q", rt))
		}
		room += float64(count) * unit
	}
	if house.Kitchen {
		room += rules.KitchenPrice
	}
	if house.LivingRoom {
		room += rules.LivingRoomPrice
	}

	addOn := 0.0
	for _, id := range addOnIDs {
		unit, ok := rules.AddOnPrices[id]
		if !ok {
			return models.PriceBreakdown{}, NewValidationError("addOnIds", fmt.Sprintf("unknown service id %q", id))
		}
		addOn += unit
	}

	breakdown := models.PriceBreakdown{
		Base:       base * mult,
		Room:       room,
		AddOnTotal: addOn,
	}
	breakdown.Total = round2(breakdown.Base + breakdown.Room + breakdown.AddOnTotal)
	return breakdown, nil
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

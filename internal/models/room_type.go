package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BedConfig struct {
	SingleBeds int `json:"single_beds" bson:"single_beds"`
	DoubleBeds int `json:"double_beds" bson:"double_beds"`
	Bathrooms  int `json:"bathrooms" bson:"bathrooms"`
}

// RoomType is one bookable room category inside an accommodation.
// AvailableUnits never exceeds TotalUnits and never goes negative; unit
// take/release happens through conditional updates in the repository.
// Deletion is always soft: is_active=false hides the type from search
// and booking but keeps it behind historical bookings.
type RoomType struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AccommodationID  primitive.ObjectID `json:"accommodation_id" bson:"accommodation_id" validate:"required"`
	Name             string             `json:"name" bson:"name" validate:"required,min=2,max=80"`
	Description      string             `json:"description" bson:"description"`
	BasePrice        float64            `json:"base_price" bson:"base_price" validate:"required"`
	Currency         string             `json:"currency" bson:"currency" default:"MZN"`
	MinOccupancy     int                `json:"min_occupancy" bson:"min_occupancy" default:"1"`
	MaxOccupancy     int                `json:"max_occupancy" bson:"max_occupancy" validate:"required,min=1"`
	TotalUnits       int                `json:"total_units" bson:"total_units" validate:"required,min=1"`
	AvailableUnits   int                `json:"available_units" bson:"available_units"`
	Beds             BedConfig          `json:"beds" bson:"beds"`
	ExtraGuestPrice  float64            `json:"extra_guest_price" bson:"extra_guest_price"`
	Amenities        []string           `json:"amenities" bson:"amenities"`
	Images           []string           `json:"images" bson:"images"`
	IsActive         bool               `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
	DeactivatedAt    *time.Time         `json:"deactivated_at" bson:"deactivated_at"`
}

// PriceForStay computes the snapshot price for a stay: base price per
// night plus the extra-guest surcharge for guests above MinOccupancy.
func (rt *RoomType) PriceForStay(nights, guests int) float64 {
	if nights < 1 {
		nights = 1
	}

	perNight := rt.BasePrice
	if guests > rt.MinOccupancy && rt.ExtraGuestPrice > 0 {
		perNight += float64(guests-rt.MinOccupancy) * rt.ExtraGuestPrice
	}

	return perNight * float64(nights)
}

func (rt *RoomType) FitsGuests(guests int) bool {
	return guests >= rt.MinOccupancy && guests <= rt.MaxOccupancy
}

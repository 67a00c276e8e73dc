package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AccommodationType string

const (
	AccommodationHotel      AccommodationType = "hotel"
	AccommodationGuesthouse AccommodationType = "guesthouse"
	AccommodationLodge      AccommodationType = "lodge"
	AccommodationApartment  AccommodationType = "apartment"
	AccommodationResort     AccommodationType = "resort"
)

type AccommodationPolicies struct {
	CheckInFrom    string `json:"check_in_from" bson:"check_in_from"`       // "14:00"
	CheckOutUntil  string `json:"check_out_until" bson:"check_out_until"`   // "11:00"
	Cancellation   string `json:"cancellation" bson:"cancellation"`         // free text shown to guests
	ChildrenPolicy string `json:"children_policy" bson:"children_policy"`
	PetsAllowed    bool   `json:"pets_allowed" bson:"pets_allowed"`
	SmokingAllowed bool   `json:"smoking_allowed" bson:"smoking_allowed"`
}

type Accommodation struct {
	ID           primitive.ObjectID    `json:"id" bson:"_id,omitempty"`
	HostID       primitive.ObjectID    `json:"host_id" bson:"host_id" validate:"required"`
	Name         string                `json:"name" bson:"name" validate:"required,min=2,max=120"`
	Type         AccommodationType     `json:"type" bson:"type" validate:"required"`
	Description  string                `json:"description" bson:"description"`
	Place        Place                 `json:"place" bson:"place" validate:"required"`
	MinPrice     float64               `json:"min_price" bson:"min_price"`
	MaxPrice     float64               `json:"max_price" bson:"max_price"`
	Currency     string                `json:"currency" bson:"currency" default:"MZN"`
	MaxGuests    int                   `json:"max_guests" bson:"max_guests"`
	Amenities    []string              `json:"amenities" bson:"amenities"`
	Images       []string              `json:"images" bson:"images"`
	Policies     AccommodationPolicies `json:"policies" bson:"policies"`
	ContactPhone string                `json:"contact_phone" bson:"contact_phone"`
	Rating       float64               `json:"rating" bson:"rating"`
	IsActive     bool                  `json:"is_active" bson:"is_active" default:"true"`
	CreatedAt    time.Time             `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at" bson:"updated_at"`
}

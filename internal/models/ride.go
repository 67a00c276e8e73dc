package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type RideStatus string

const (
	RideStatusPending   RideStatus = "pending"
	RideStatusAvailable RideStatus = "available"
	RideStatusActive    RideStatus = "active"
	RideStatusConfirmed RideStatus = "confirmed"
	RideStatusCompleted RideStatus = "completed"
	RideStatusCancelled RideStatus = "cancelled"
	RideStatusExpired   RideStatus = "expired"
)

// BookableRideStatuses are the states in which seats may still be
// reserved.
var BookableRideStatuses = []RideStatus{
	RideStatusPending,
	RideStatusAvailable,
	RideStatusActive,
	RideStatusConfirmed,
}

type Vehicle struct {
	Make         string `json:"make" bson:"make"`
	Model        string `json:"model" bson:"model"`
	Color        string `json:"color" bson:"color"`
	LicensePlate string `json:"license_plate" bson:"license_plate"`
	Year         int    `json:"year" bson:"year"`
}

// Ride is a driver-published trip offer with a fixed number of seats at
// a fixed price per seat.
type Ride struct {
	ID               primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DriverID         primitive.ObjectID `json:"driver_id" bson:"driver_id" validate:"required"`
	From             Place              `json:"from" bson:"from" validate:"required"`
	To               Place              `json:"to" bson:"to" validate:"required"`
	DepartureAt      time.Time          `json:"departure_at" bson:"departure_at" validate:"required"`
	MaxPassengers    int                `json:"max_passengers" bson:"max_passengers" validate:"required,min=1"`
	AvailableSeats   int                `json:"available_seats" bson:"available_seats"`
	PricePerSeat     float64            `json:"price_per_seat" bson:"price_per_seat" validate:"required"`
	Currency         string             `json:"currency" bson:"currency" default:"MZN"`
	Vehicle          Vehicle            `json:"vehicle" bson:"vehicle"`
	Status           RideStatus         `json:"status" bson:"status" default:"available"`
	AllowNegotiation bool               `json:"allow_negotiation" bson:"allow_negotiation"`
	PickupEnRoute    bool               `json:"pickup_en_route" bson:"pickup_en_route"`
	Notes            string             `json:"notes" bson:"notes"`
	DistanceKM       float64            `json:"distance_km" bson:"distance_km"`
	CancelledAt      *time.Time         `json:"cancelled_at" bson:"cancelled_at"`
	CancelReason     string             `json:"cancel_reason" bson:"cancel_reason"`
	CreatedAt        time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at" bson:"updated_at"`
}

// IsDeparted reports whether the ride's departure has passed. Departed
// rides are shown as expired; nothing flips the stored status until the
// next write.
func (r *Ride) IsDeparted(now time.Time) bool {
	return now.After(r.DepartureAt)
}

// DisplayStatus is the status surfaced on read paths, normalizing
// departed rides to expired.
func (r *Ride) DisplayStatus(now time.Time) RideStatus {
	switch r.Status {
	case RideStatusCompleted, RideStatusCancelled, RideStatusExpired:
		return r.Status
	}
	if r.IsDeparted(now) {
		return RideStatusExpired
	}
	return r.Status
}

func (r *Ride) IsBookable(now time.Time) bool {
	if r.IsDeparted(now) {
		return false
	}
	for _, s := range BookableRideStatuses {
		if r.Status == s {
			return r.AvailableSeats > 0
		}
	}
	return false
}

// SeatBooking records a client's reserved seats on a ride.
type SeatBooking struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	RideID      primitive.ObjectID `json:"ride_id" bson:"ride_id" validate:"required"`
	ClientID    primitive.ObjectID `json:"client_id" bson:"client_id" validate:"required"`
	Seats       int                `json:"seats" bson:"seats" validate:"required,min=1"`
	TotalPrice  float64            `json:"total_price" bson:"total_price"`
	Currency    string             `json:"currency" bson:"currency" default:"MZN"`
	Status      string             `json:"status" bson:"status" default:"reserved"` // reserved, cancelled
	CancelledAt *time.Time         `json:"cancelled_at" bson:"cancelled_at"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// bookingTransitions encodes the only legal lifecycle moves:
// pending→confirmed→active→completed, with cancellation allowed before
// check-in.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusActive, BookingStatusCancelled},
	BookingStatusActive:    {BookingStatusCompleted},
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusActive,
		BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

func CanTransitionBooking(from, to BookingStatus) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
	PaymentStatusFailed   PaymentStatus = "failed"
)

// HotelBooking references an accommodation, a room type and a client,
// with the price snapshotted at booking time.
type HotelBooking struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Reference       string             `json:"reference" bson:"reference"`
	AccommodationID primitive.ObjectID `json:"accommodation_id" bson:"accommodation_id" validate:"required"`
	RoomTypeID      primitive.ObjectID `json:"room_type_id" bson:"room_type_id" validate:"required"`
	ClientID        primitive.ObjectID `json:"client_id" bson:"client_id" validate:"required"`
	CheckIn         time.Time          `json:"check_in" bson:"check_in" validate:"required"`
	CheckOut        time.Time          `json:"check_out" bson:"check_out" validate:"required"`
	Nights          int                `json:"nights" bson:"nights"`
	Guests          int                `json:"guests" bson:"guests" validate:"required,min=1"`
	TotalPrice      float64            `json:"total_price" bson:"total_price"`
	DiscountPct     float64            `json:"discount_pct" bson:"discount_pct"`
	Currency        string             `json:"currency" bson:"currency" default:"MZN"`
	Status          BookingStatus      `json:"status" bson:"status" default:"pending"`
	PaymentStatus   PaymentStatus      `json:"payment_status" bson:"payment_status" default:"unpaid"`
	TransactionID   string             `json:"transaction_id,omitempty" bson:"transaction_id,omitempty"`
	GuestNotes      string             `json:"guest_notes" bson:"guest_notes"`
	RejectReason    string             `json:"reject_reason" bson:"reject_reason"`
	ConfirmedAt     *time.Time         `json:"confirmed_at" bson:"confirmed_at"`
	CheckedInAt     *time.Time         `json:"checked_in_at" bson:"checked_in_at"`
	CheckedOutAt    *time.Time         `json:"checked_out_at" bson:"checked_out_at"`
	CancelledAt     *time.Time         `json:"cancelled_at" bson:"cancelled_at"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// HoldsUnit reports whether the booking still occupies a room unit, in
// which case cancellation must hand the unit back.
func (b *HotelBooking) HoldsUnit() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed || b.Status == BookingStatusActive
}

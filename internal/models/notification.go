package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string
type NotificationStatus string

const (
	NotificationTypeBookingConfirmed   NotificationType = "booking_confirmed"
	NotificationTypeBookingRejected    NotificationType = "booking_rejected"
	NotificationTypeBookingCancelled   NotificationType = "booking_cancelled"
	NotificationTypeSeatsReserved      NotificationType = "seats_reserved"
	NotificationTypeRideCancelled      NotificationType = "ride_cancelled"
	NotificationTypeProposalAccepted   NotificationType = "proposal_accepted"
	NotificationTypeProposalRejected   NotificationType = "proposal_rejected"
	NotificationTypePartnershipExpired NotificationType = "partnership_expired"
	NotificationTypeChatMessage        NotificationType = "chat_message"
	NotificationTypeGeneral            NotificationType = "general"

	NotificationStatusUnread NotificationStatus = "unread"
	NotificationStatusRead   NotificationStatus = "read"
)

type Notification struct {
	ID        primitive.ObjectID     `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID     `json:"user_id" bson:"user_id" validate:"required"`
	Type      NotificationType       `json:"type" bson:"type" validate:"required"`
	Status    NotificationStatus     `json:"status" bson:"status" default:"unread"`
	Title     string                 `json:"title" bson:"title" validate:"required"`
	Message   string                 `json:"message" bson:"message" validate:"required"`
	Data      map[string]interface{} `json:"data" bson:"data"`
	ReadAt    *time.Time             `json:"read_at" bson:"read_at"`
	CreatedAt time.Time              `json:"created_at" bson:"created_at"`
}

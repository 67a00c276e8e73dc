package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ConversationContext string

const (
	ConversationContextRide    ConversationContext = "ride"
	ConversationContextBooking ConversationContext = "booking"
)

// Conversation links two participants around one ride or booking. The
// pair plus context id is unique; re-opening a chat reuses the record.
type Conversation struct {
	ID           primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Context      ConversationContext  `json:"context" bson:"context" validate:"required"`
	ContextID    primitive.ObjectID   `json:"context_id" bson:"context_id" validate:"required"`
	Participants []primitive.ObjectID `json:"participants" bson:"participants"`
	LastMessage  string               `json:"last_message" bson:"last_message"`
	LastSentAt   *time.Time           `json:"last_sent_at" bson:"last_sent_at"`
	CreatedAt    time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at" bson:"updated_at"`
}

func (c *Conversation) HasParticipant(userID primitive.ObjectID) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

type Message struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ConversationID primitive.ObjectID `json:"conversation_id" bson:"conversation_id" validate:"required"`
	SenderID       primitive.ObjectID `json:"sender_id" bson:"sender_id" validate:"required"`
	Content        string             `json:"content" bson:"content" validate:"required,max=1000"`
	ReadAt         *time.Time         `json:"read_at" bson:"read_at"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
}

package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes every query path depends on. Safe to
// run on every startup; Mongo treats existing definitions as no-ops.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "uid", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}},
			{Keys: bson.D{{Key: "user_type", Value: 1}}},
		},
		"rides": {
			{Keys: bson.D{{Key: "driver_id", Value: 1}, {Key: "departure_at", Value: -1}}},
			{Keys: bson.D{{Key: "from.city", Value: 1}, {Key: "to.city", Value: 1}, {Key: "departure_at", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "from.coordinates", Value: "2dsphere"}}},
		},
		"seat_bookings": {
			{Keys: bson.D{{Key: "ride_id", Value: 1}}},
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"accommodations": {
			{Keys: bson.D{{Key: "host_id", Value: 1}}},
			{Keys: bson.D{{Key: "place.city", Value: 1}, {Key: "is_active", Value: 1}}},
			{Keys: bson.D{{Key: "place.coordinates", Value: "2dsphere"}}},
		},
		"room_types": {
			{Keys: bson.D{{Key: "accommodation_id", Value: 1}, {Key: "is_active", Value: 1}}},
		},
		"hotel_bookings": {
			{Keys: bson.D{{Key: "accommodation_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "reference", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"proposals": {
			{Keys: bson.D{{Key: "accommodation_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "manager_id", Value: 1}}},
		},
		"applications": {
			{Keys: bson.D{{Key: "proposal_id", Value: 1}, {Key: "driver_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "driver_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"partnerships": {
			{Keys: bson.D{{Key: "driver_id", Value: 1}, {Key: "accommodation_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "valid_until", Value: 1}}},
		},
		"conversations": {
			{Keys: bson.D{{Key: "context", Value: 1}, {Key: "context_id", Value: 1}, {Key: "participants", Value: 1}}},
			{Keys: bson.D{{Key: "participants", Value: 1}, {Key: "updated_at", Value: -1}}},
		},
		"messages": {
			{Keys: bson.D{{Key: "conversation_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		"notifications": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}

	for collection, models := range indexes {
		if _, err := m.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", collection, err)
		}
	}

	return nil
}

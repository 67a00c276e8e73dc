package mongodb

import (
	"context"
	"fmt"
	"time"

	"boleia/internal/models"
	"boleia/internal/repositories/interfaces"
	"boleia/internal/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type roomTypeRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewRoomTypeRepository(db *mongo.Database, cache CacheService) interfaces.RoomTypeRepository {
	return &roomTypeRepository{
		collection: db.Collection("room_types"),
		cache:      cache,
	}
}

func (r *roomTypeRepository) Create(ctx context.Context, roomType *models.RoomType) error {
	roomType.ID = primitive.NewObjectID()
	roomType.IsActive = true
	roomType.CreatedAt = time.Now()
	roomType.UpdatedAt = time.Now()

	if roomType.AvailableUnits == 0 {
		roomType.AvailableUnits = roomType.TotalUnits
	}
	if roomType.MinOccupancy == 0 {
		roomType.MinOccupancy = 1
	}

	_, err := r.collection.InsertOne(ctx, roomType)
	if err != nil {
		return fmt.Errorf("failed to create room type: %w", err)
	}

	return nil
}

func (r *roomTypeRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.RoomType, error) {
	if r.cache != nil {
		var roomType models.RoomType
		if err := r.cache.Get(ctx, utils.CacheRoomTypePrefix+id.Hex(), &roomType); err == nil {
			return &roomType, nil
		}
	}

	var roomType models.RoomType
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&roomType)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get room type: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheRoomTypePrefix+id.Hex(), roomType, utils.RoomTypeCacheTTL)
	}

	return &roomType, nil
}

func (r *roomTypeRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update room type: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateCache(ctx, id)

	return nil
}

func (r *roomTypeRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	return r.Update(ctx, id, map[string]interface{}{
		"is_active":      false,
		"deactivated_at": time.Now(),
	})
}

func (r *roomTypeRepository) GetByAccommodation(ctx context.Context, accommodationID primitive.ObjectID, activeOnly bool) ([]*models.RoomType, error) {
	filter := bson.M{"accommodation_id": accommodationID}
	if activeOnly {
		filter["is_active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "base_price", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}
	defer cursor.Close(ctx)

	var roomTypes []*models.RoomType
	if err := cursor.All(ctx, &roomTypes); err != nil {
		return nil, fmt.Errorf("failed to decode room types: %w", err)
	}

	return roomTypes, nil
}

// TakeUnit decrements available_units only while a unit remains and the
// type is still active. A miss means no availability.
func (r *roomTypeRepository) TakeUnit(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"_id":             id,
			"available_units": bson.M{"$gte": 1},
			"is_active":       true,
		},
		bson.M{
			"$inc": bson.M{"available_units": -1},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to take unit: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrInsufficientUnits
	}

	r.invalidateCache(ctx, id)

	return nil
}

// ReleaseUnit hands a unit back on cancellation, capped at total_units.
func (r *roomTypeRepository) ReleaseUnit(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		[]bson.M{
			{"$set": bson.M{
				"available_units": bson.M{
					"$min": bson.A{
						bson.M{"$add": bson.A{"$available_units", 1}},
						"$total_units",
					},
				},
				"updated_at": time.Now(),
			}},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to release unit: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateCache(ctx, id)

	return nil
}

func (r *roomTypeRepository) AddImage(ctx context.Context, id primitive.ObjectID, imageURL string) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$addToSet": bson.M{"images": imageURL},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to add image: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateCache(ctx, id)

	return nil
}

func (r *roomTypeRepository) invalidateCache(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheRoomTypePrefix+id.Hex())
	}
}

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
)

type bookingRepository struct {
	collection *mongo.Collection
	cache      CacheService
}

func NewBookingRepository(db *mongo.Database, cache CacheService) interfaces.BookingRepository {
	return &bookingRepository{
		collection: db.Collection("hotel_bookings"),
		cache:      cache,
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *models.HotelBooking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.HotelBooking, error) {
	if r.cache != nil {
		var booking models.HotelBooking
		if err := r.cache.Get(ctx, utils.CacheBookingPrefix+id.Hex(), &booking); err == nil {
			return &booking, nil
		}
	}

	var booking models.HotelBooking
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheBookingPrefix+id.Hex(), booking, utils.BookingCacheTTL)
	}

	return &booking, nil
}

func (r *bookingRepository) GetByReference(ctx context.Context, reference string) (*models.HotelBooking, error) {
	var booking models.HotelBooking
	err := r.collection.FindOne(ctx, bson.M{"reference": reference}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get booking by reference: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheBookingPrefix+id.Hex())
	}

	return nil
}

func (r *bookingRepository) GetByClient(ctx context.Context, clientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.HotelBooking, int64, error) {
	return r.findBookings(ctx, bson.M{"client_id": clientID}, params)
}

func (r *bookingRepository) GetByAccommodation(ctx context.Context, accommodationID primitive.ObjectID, params *utils.PaginationParams) ([]*models.HotelBooking, int64, error) {
	return r.findBookings(ctx, bson.M{"accommodation_id": accommodationID}, params)
}

func (r *bookingRepository) GetByStatus(ctx context.Context, accommodationID primitive.ObjectID, status models.BookingStatus, params *utils.PaginationParams) ([]*models.HotelBooking, int64, error) {
	return r.findBookings(ctx, bson.M{
		"accommodation_id": accommodationID,
		"status":           status,
	}, params)
}

func (r *bookingRepository) CountByAccommodation(ctx context.Context, accommodationID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"accommodation_id": accommodationID})
}

func (r *bookingRepository) findBookings(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.HotelBooking, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.HotelBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode bookings: %w", err)
	}

	return bookings, total, nil
}

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

type rideRepository struct {
	collection   *mongo.Collection
	seatBookings *mongo.Collection
	cache        CacheService
}

func NewRideRepository(db *mongo.Database, cache CacheService) interfaces.RideRepository {
	return &rideRepository{
		collection:   db.Collection("rides"),
		seatBookings: db.Collection("seat_bookings"),
		cache:        cache,
	}
}

func (r *rideRepository) Create(ctx context.Context, ride *models.Ride) error {
	ride.ID = primitive.NewObjectID()
	ride.CreatedAt = time.Now()
	ride.UpdatedAt = time.Now()

	if ride.AvailableSeats == 0 {
		ride.AvailableSeats = ride.MaxPassengers
	}

	_, err := r.collection.InsertOne(ctx, ride)
	if err != nil {
		return fmt.Errorf("failed to create ride: %w", err)
	}

	return nil
}

func (r *rideRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Ride, error) {
	if r.cache != nil {
		var ride models.Ride
		if err := r.cache.Get(ctx, utils.CacheRidePrefix+id.Hex(), &ride); err == nil {
			return &ride, nil
		}
	}

	var ride models.Ride
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&ride)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ride: %w", err)
	}

	if r.cache != nil {
		r.cache.Set(ctx, utils.CacheRidePrefix+id.Hex(), ride, utils.RideCacheTTL)
	}

	return &ride, nil
}

func (r *rideRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update ride: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateRideCache(ctx, id)

	return nil
}

func (r *rideRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.RideStatus) error {
	return r.Update(ctx, id, map[string]interface{}{"status": status})
}

// departureWindow bounds the departure_at filter. Departed rides are
// noise on the search surface, so the lower bound never falls behind
// now, even when the requested day is today or already over.
func departureWindow(date *time.Time, now time.Time) bson.M {
	if date == nil {
		return bson.M{"$gte": now}
	}

	from := utils.StartOfDay(*date)
	if now.After(from) {
		from = now
	}

	return bson.M{
		"$gte": from,
		"$lt":  utils.EndOfDay(*date),
	}
}

func (r *rideRepository) Search(ctx context.Context, filter *interfaces.RideSearchFilter, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	query := bson.M{}

	if filter.FromCity != "" {
		query["from.city"] = bson.M{"$regex": "^" + filter.FromCity + "$", "$options": "i"}
	}
	if filter.ToCity != "" {
		query["to.city"] = bson.M{"$regex": "^" + filter.ToCity + "$", "$options": "i"}
	}
	if filter.FromProvince != "" {
		query["from.province"] = filter.FromProvince
	}
	if filter.ToProvince != "" {
		query["to.province"] = filter.ToProvince
	}
	query["departure_at"] = departureWindow(filter.Date, time.Now())
	if filter.MinSeats > 0 {
		query["available_seats"] = bson.M{"$gte": filter.MinSeats}
	}
	if filter.MaxPrice > 0 {
		query["price_per_seat"] = bson.M{"$lte": filter.MaxPrice}
	}
	if !filter.DriverID.IsZero() {
		query["driver_id"] = filter.DriverID
	}

	query["status"] = bson.M{"$in": models.BookableRideStatuses}

	return r.findRides(ctx, query, params)
}

func (r *rideRepository) GetByDriver(ctx context.Context, driverID primitive.ObjectID, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	return r.findRides(ctx, bson.M{"driver_id": driverID}, params)
}

// ReserveSeats decrements available_seats only when the ride still has
// enough seats and is in a bookable status. A miss means either the
// ride is gone or the seats are: the caller disambiguates with GetByID.
func (r *rideRepository) ReserveSeats(ctx context.Context, id primitive.ObjectID, seats int) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{
			"_id":             id,
			"available_seats": bson.M{"$gte": seats},
			"status":          bson.M{"$in": models.BookableRideStatuses},
			"departure_at":    bson.M{"$gt": time.Now()},
		},
		bson.M{
			"$inc": bson.M{"available_seats": -seats},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to reserve seats: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrInsufficientSeats
	}

	r.invalidateRideCache(ctx, id)

	return nil
}

// ReleaseSeats hands seats back on cancellation, capped so the count
// never exceeds max_passengers.
func (r *rideRepository) ReleaseSeats(ctx context.Context, id primitive.ObjectID, seats int) error {
	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		[]bson.M{
			{"$set": bson.M{
				"available_seats": bson.M{
					"$min": bson.A{
						bson.M{"$add": bson.A{"$available_seats", seats}},
						"$max_passengers",
					},
				},
				"updated_at": time.Now(),
			}},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to release seats: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	r.invalidateRideCache(ctx, id)

	return nil
}

func (r *rideRepository) CreateSeatBooking(ctx context.Context, booking *models.SeatBooking) error {
	booking.ID = primitive.NewObjectID()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()
	if booking.Status == "" {
		booking.Status = "reserved"
	}

	_, err := r.seatBookings.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create seat booking: %w", err)
	}

	return nil
}

func (r *rideRepository) GetSeatBooking(ctx context.Context, id primitive.ObjectID) (*models.SeatBooking, error) {
	var booking models.SeatBooking
	err := r.seatBookings.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get seat booking: %w", err)
	}

	return &booking, nil
}

func (r *rideRepository) GetSeatBookingsByRide(ctx context.Context, rideID primitive.ObjectID) ([]*models.SeatBooking, error) {
	cursor, err := r.seatBookings.Find(ctx, bson.M{"ride_id": rideID})
	if err != nil {
		return nil, fmt.Errorf("failed to list seat bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.SeatBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode seat bookings: %w", err)
	}

	return bookings, nil
}

func (r *rideRepository) GetSeatBookingsByClient(ctx context.Context, clientID primitive.ObjectID, params *utils.PaginationParams) ([]*models.SeatBooking, int64, error) {
	filter := bson.M{"client_id": clientID}

	total, err := r.seatBookings.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count seat bookings: %w", err)
	}

	cursor, err := r.seatBookings.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list seat bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*models.SeatBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, 0, fmt.Errorf("failed to decode seat bookings: %w", err)
	}

	return bookings, total, nil
}

func (r *rideRepository) CancelSeatBooking(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	result, err := r.seatBookings.UpdateOne(
		ctx,
		bson.M{"_id": id, "status": "reserved"},
		bson.M{"$set": bson.M{
			"status":       "cancelled",
			"cancelled_at": now,
			"updated_at":   now,
		}},
	)
	if err != nil {
		return fmt.Errorf("failed to cancel seat booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}

	return nil
}

func (r *rideRepository) CountCompletedByDriver(ctx context.Context, driverID primitive.ObjectID) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{
		"driver_id": driverID,
		"status":    models.RideStatusCompleted,
	})
}

func (r *rideRepository) findRides(ctx context.Context, filter bson.M, params *utils.PaginationParams) ([]*models.Ride, int64, error) {
	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count rides: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetSortOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list rides: %w", err)
	}
	defer cursor.Close(ctx)

	var rides []*models.Ride
	if err := cursor.All(ctx, &rides); err != nil {
		return nil, 0, fmt.Errorf("failed to decode rides: %w", err)
	}

	return rides, total, nil
}

func (r *rideRepository) invalidateRideCache(ctx context.Context, id primitive.ObjectID) {
	if r.cache != nil {
		r.cache.Delete(ctx, utils.CacheRidePrefix+id.Hex())
	}
}
